package telegram

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/elboletin/newsbot/internal/config"
)

const (
	// MaxMessageSize is Telegram's hard limit for one text message.
	MaxMessageSize = 4096
	// MaxCaptionSize is Telegram's limit for a media caption.
	MaxCaptionSize = 1024
)

// Reserved characters of the MarkdownV2 dialect. The bold and link delimiters
// the builder emits itself are deliberately left raw so formatting renders.
const markdownReserved = "\\_*[]()~`>#+-=|{}.!"

// URLs inside link syntax have their own narrower reserved set.
const urlReserved = "\\)"

// Item is one selected, translated story ready for formatting.
type Item struct {
	Title       string
	Summary     string
	SourceURL   string
	ImageURL    string
	Category    config.Category
	Fingerprint string
}

// Block is a transport-ready unit: escaped text within the size limit, an
// optional media URL, and the fingerprints it confirms when delivered.
type Block struct {
	Text         string
	ImageURL     string
	Fingerprints []string
}

var sectionIcons = map[config.Category]string{
	config.CategoryTechnology: "💻",
	config.CategoryColombia:   "🇨🇴",
	config.CategoryWorld:      "🌍",
}

var sectionTitles = map[config.Category]string{
	config.CategoryTechnology: "TECNOLOGÍA",
	config.CategoryColombia:   "COLOMBIA",
	config.CategoryWorld:      "MUNDIAL",
}

// EscapeText backslash-escapes every reserved MarkdownV2 character so
// arbitrary feed text cannot break or inject formatting.
func EscapeText(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range s {
		if r < utf8.RuneSelf && strings.ContainsRune(markdownReserved, r) {
			sb.WriteByte('\\')
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// EscapeURL escapes the characters reserved inside the (...) part of link
// syntax.
func EscapeURL(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range s {
		if r < utf8.RuneSelf && strings.ContainsRune(urlReserved, r) {
			sb.WriteByte('\\')
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// Formatter renders items into size-bounded MarkdownV2 blocks.
type Formatter struct{}

func NewFormatter() *Formatter {
	return &Formatter{}
}

// Header renders the bulletin header line.
func (f *Formatter) Header(now time.Time) string {
	return "📰 *Boletín de noticias* — " + EscapeText(now.Format("02/01/2006 15:04"))
}

// renderItem builds the body of one story. withSection prepends the section
// header used when the category changes from the previous item.
func (f *Formatter) renderItem(item Item, withSection bool) string {
	var parts []string

	if withSection {
		parts = append(parts, fmt.Sprintf("%s *%s*", sectionIcons[item.Category], EscapeText(sectionTitles[item.Category])))
	}

	parts = append(parts, "• *"+EscapeText(item.Title)+"*")

	if item.Summary != "" {
		parts = append(parts, EscapeText(item.Summary))
	}

	parts = append(parts, fmt.Sprintf("[%s](%s)", EscapeText("Fuente"), EscapeURL(item.SourceURL)))

	return strings.Join(parts, "\n")
}

// ItemBlocks renders one block per item, adding a section header whenever the
// category changes. Items with an image get it attached when the text fits a
// caption; the delivery driver may still fall back to plain text.
func (f *Formatter) ItemBlocks(items []Item) []Block {
	var blocks []Block

	var current config.Category

	for _, item := range items {
		withSection := item.Category != current
		current = item.Category

		text := f.renderItem(item, withSection)

		for i, part := range SplitMessage(text, MaxMessageSize) {
			block := Block{Text: part, Fingerprints: []string{item.Fingerprint}}

			// Only the first part can carry the photo.
			if i == 0 && item.ImageURL != "" && utf8.RuneCountInString(part) <= MaxCaptionSize {
				block.ImageURL = item.ImageURL
			}

			blocks = append(blocks, block)
		}
	}

	return blocks
}

// BatchBlocks renders the whole bulletin as one logical digest, split into an
// ordered sequence of blocks. All fingerprints ride on the sequence and are
// confirmed together.
func (f *Formatter) BatchBlocks(header string, items []Item) []Block {
	var sb strings.Builder

	sb.WriteString(header)

	var current config.Category

	fingerprints := make([]string, 0, len(items))

	for _, item := range items {
		sb.WriteString("\n\n")
		sb.WriteString(f.renderItem(item, item.Category != current))
		current = item.Category

		fingerprints = append(fingerprints, item.Fingerprint)
	}

	parts := SplitMessage(sb.String(), MaxMessageSize)
	blocks := make([]Block, 0, len(parts))

	for i, part := range parts {
		block := Block{Text: part}
		if i == len(parts)-1 {
			block.Fingerprints = fingerprints
		}

		blocks = append(blocks, block)
	}

	return blocks
}

// SplitMessage splits text into parts of at most limit runes, cutting at the
// last newline before the limit so no line is ever broken mid-way.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 {
		return []string{text}
	}

	var parts []string

	remaining := text
	for utf8.RuneCountInString(remaining) > limit {
		window := string([]rune(remaining)[:limit])

		cut := strings.LastIndex(window, "\n")
		if cut <= 0 {
			cut = len(window)
		}

		parts = append(parts, strings.TrimRight(remaining[:cut], "\n"))
		remaining = strings.TrimLeft(remaining[cut:], "\n")
	}

	if remaining != "" {
		parts = append(parts, remaining)
	}

	return parts
}
