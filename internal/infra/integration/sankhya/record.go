package sankhya

import (
	"strconv"

	"github.com/xavierca1/sankhya-leads/internal/entity"
)

// Record é uma linha do loadRecords com as chaves f0..fN já trocadas pelos nomes dos campos.
type Record map[string]string

func newRecord(names []string, row map[string]cell) Record {
	rec := make(Record, len(row))
	for key, c := range row {
		name := key
		if len(key) > 1 && key[0] == 'f' {
			if pos, err := strconv.Atoi(key[1:]); err == nil && pos < len(names) {
				name = names[pos]
			}
		}
		if !c.Null {
			rec[name] = c.Value
		}
	}
	return rec
}

func (r Record) String(field string) string {
	return r[field]
}

func (r Record) Float(field string) float64 {
	return entity.ParseAmount(r[field])
}
