package glossary

import (
	"encoding/csv"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Glossary renders the internal-terms reference table as bullet text for
// prompt inclusion. The file is read at most once per process; a failed
// read caches the empty string so the failure is not retried per row.
type Glossary struct {
	path string
	log  *zap.Logger

	once sync.Once
	text string
}

func New(path string, log *zap.Logger) *Glossary {
	return &Glossary{path: path, log: log}
}

// Text returns the glossary as "- term: definition" lines, loading it on
// first use.
func (g *Glossary) Text() string {
	g.once.Do(func() {
		g.text = g.load()
	})
	return g.text
}

func (g *Glossary) load() string {
	f, err := os.Open(g.path)
	if err != nil {
		g.log.Warn("glossary unavailable, proceeding without it",
			zap.String("path", g.path), zap.Error(err))
		return ""
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		g.log.Warn("glossary could not be read, proceeding without it",
			zap.String("path", g.path), zap.Error(err))
		return ""
	}

	terms := make([]string, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			// header row
			continue
		}
		if len(row) < 2 {
			continue
		}
		terms = append(terms, "- "+row[0]+": "+row[1])
	}
	return strings.Join(terms, "\n")
}
