package llm

const translatePrompt = `Reescribe el siguiente texto ÍNTEGRAMENTE en ESPAÑOL neutro, claro y natural. ` +
	`Si ya está en español, mejóralo ligeramente. No dejes nada en inglés. ` +
	`No agregues comillas ni comentarios.

%s`

const summarizePrompt = `Redacta un resumen informativo en ESPAÑOL (3 a 5 frases, ~100 palabras). ` +
	`Explica qué pasó, por qué importa y da contexto. ` +
	`NO dejes nada en inglés. No agregues comentarios ni comillas.

Título: %s
Descripción: %s
Categoría: %s
`

const scorePromptHeader = `Score the newsworthiness of these %d headlines for a daily Spanish-language news bulletin. ` +
	`Return a JSON object with a 'results' key containing an array of objects, one per headline, in the same order. ` +
	`Each object MUST have:
- index (integer, matching the [ID] below)
- score (number, 0-10): importance for a general audience today
  - 0-3: routine updates, promotions, evergreen content
  - 4-6: notable but not urgent
  - 7-9: significant development or announcement
  - 10: breaking news

Headlines:
`
