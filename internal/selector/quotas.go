package selector

import (
	"time"

	"github.com/elboletin/newsbot/internal/config"
)

// QuotaTable maps a category to its target item count for the current run.
// Categories without an entry have quota 0.
type QuotaTable map[config.Category]int

func (q QuotaTable) For(category config.Category) int {
	return q[category]
}

func (q QuotaTable) Total() int {
	total := 0

	for _, n := range q {
		total += n
	}

	return total
}

// QuotasForDay builds the quota table for a run. Weekends carry a little less
// technology; only-tech mode zeroes everything else.
func QuotasForDay(cfg *config.Config, day time.Weekday, onlyTech bool) QuotaTable {
	tech := cfg.QuotaTech
	if day == time.Saturday || day == time.Sunday {
		tech = cfg.QuotaTechWeekend
	}

	if onlyTech {
		return QuotaTable{config.CategoryTechnology: tech}
	}

	return QuotaTable{
		config.CategoryTechnology: tech,
		config.CategoryColombia:   cfg.QuotaColombia,
		config.CategoryWorld:      cfg.QuotaWorld,
	}
}
