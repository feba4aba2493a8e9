package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ERPDateLayout é o formato DD/MM/YYYY aceito pelo DatasetSP.save.
const ERPDateLayout = "02/01/2006"

func ERPDate(t time.Time) string {
	return t.Local().Format(ERPDateLayout)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatAmount gera o valor monetário com ponto e duas casas (39.80).
func FormatAmount(v float64) string {
	return strconv.FormatFloat(Round2(v), 'f', 2, 64)
}

// FormatNumber gera o menor texto que representa v (2, 19.9).
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// IsFinite rejeita NaN e ±Inf, que o strconv aceita como texto.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ParseAmount converte os valores textuais do ERP. Vazio, inválido ou não finito vira 0.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return finiteOrZero(v)
	}
	// 1.234,56
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return finiteOrZero(v)
		}
	}
	return 0
}

func finiteOrZero(v float64) float64 {
	if !IsFinite(v) {
		return 0
	}
	return v
}

// Code aceita códigos enviados como texto ou número no JSON ("100" ou 100).
type Code string

func (c *Code) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Code(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("código inválido: %s", string(data))
	}
	*c = Code(n.String())
	return nil
}

func (c Code) String() string {
	return string(c)
}

// Number aceita valores numéricos como número ou texto no JSON ("2", 2, "19,90").
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if v, err := strconv.ParseFloat(s, 64); err == nil && !IsFinite(v) {
			return fmt.Errorf("número inválido: %q", s)
		}
		*n = Number(ParseAmount(s))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("número inválido: %s", string(data))
	}
	*n = Number(f)
	return nil
}
