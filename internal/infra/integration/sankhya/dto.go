package sankhya

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	ServiceLoadRecords = "CRUDServiceProvider.loadRecords"
	ServiceSave        = "DatasetSP.save"
)

type loginResponse struct {
	BearerToken string `json:"bearerToken"`
	Token       string `json:"token"`
}

// envelope é o formato comum das respostas do service.sbr.
type envelope struct {
	ServiceName   string          `json:"serviceName"`
	Status        string          `json:"status"`
	StatusMessage string          `json:"statusMessage"`
	ResponseBody  json.RawMessage `json:"responseBody"`
}

const statusError = "0"

type serviceRequest struct {
	ServiceName string `json:"serviceName"`
	RequestBody any    `json:"requestBody"`
}

// loadRecords

type loadRecordsBody struct {
	DataSet dataSet `json:"dataSet"`
}

type dataSet struct {
	RootEntity                string    `json:"rootEntity"`
	IncludePresentationFields string    `json:"includePresentationFields"`
	OffsetPage                string    `json:"offsetPage"`
	Entity                    entitySet `json:"entity"`
	Criteria                  *criteria `json:"criteria,omitempty"`
}

type entitySet struct {
	Fieldset struct {
		List string `json:"list"`
	} `json:"fieldset"`
}

type criteria struct {
	Expression struct {
		Value string `json:"$"`
	} `json:"expression"`
	Parameter []Parameter `json:"parameter,omitempty"`
}

// Parameter é um valor ligado a um "?" da expressão de critério.
type Parameter struct {
	Value string `json:"$"`
	Type  string `json:"type"`
}

func StringParam(v string) Parameter {
	return Parameter{Value: v, Type: "S"}
}

func IntParam(v string) Parameter {
	return Parameter{Value: v, Type: "I"}
}

type loadRecordsResponse struct {
	Entities *struct {
		Total         string `json:"total"`
		HasMoreResult string `json:"hasMoreResult"`
		Metadata      struct {
			Fields struct {
				Field oneOrMany[fieldMetadata] `json:"field"`
			} `json:"fields"`
		} `json:"metadata"`
		Entity oneOrMany[map[string]cell] `json:"entity"`
	} `json:"entities"`
}

type fieldMetadata struct {
	Name string `json:"name"`
}

// oneOrMany decodifica campos que o gateway devolve como objeto quando há
// um único item e como array quando há vários.
type oneOrMany[T any] []T

func (o *oneOrMany[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*o = nil
		return nil
	}
	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*o = items
		return nil
	}
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*o = []T{item}
	return nil
}

// cell é o valor posicional {"$": "..."}; campos nulos chegam como {}.
type cell struct {
	Value string
	Null  bool
}

func (c *cell) UnmarshalJSON(data []byte) error {
	var raw struct {
		Value json.RawMessage `json:"$"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Value) == 0 || bytes.Equal(raw.Value, []byte("null")) {
		c.Null = true
		return nil
	}
	if raw.Value[0] == '"' {
		return json.Unmarshal(raw.Value, &c.Value)
	}
	c.Value = string(raw.Value)
	return nil
}

// DatasetSP.save

type saveBody struct {
	EntityName string       `json:"entityName"`
	StandAlone bool         `json:"standAlone"`
	Fields     []string     `json:"fields"`
	Records    []saveRecord `json:"records"`
}

type saveRecord struct {
	PK     map[string]string `json:"pk,omitempty"`
	Values map[string]string `json:"values"`
}

// SaveRequest grava registros em EntityName. Values de cada registro seguem a ordem de Fields.
type SaveRequest struct {
	EntityName string
	Fields     []string
	Records    []SaveRecord
}

type SaveRecord struct {
	PK     map[string]string
	Values []string
}

func (r SaveRequest) body() (saveBody, error) {
	body := saveBody{
		EntityName: r.EntityName,
		StandAlone: false,
		Fields:     r.Fields,
	}
	for i, rec := range r.Records {
		if len(rec.Values) != len(r.Fields) {
			return saveBody{}, fmt.Errorf("registro %d de %s: %d valores para %d campos", i, r.EntityName, len(rec.Values), len(r.Fields))
		}
		values := make(map[string]string, len(rec.Values))
		for pos, v := range rec.Values {
			values[strconv.Itoa(pos)] = v
		}
		body.Records = append(body.Records, saveRecord{PK: rec.PK, Values: values})
	}
	return body, nil
}
