package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// writeOrderedObject encodes labels and values as one JSON object, keeping
// the given key order (encoding/json sorts map keys).
func writeOrderedObject(labels []string, values []interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range labels {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MonthLabel formats a month the way report keys are written, e.g. "March 2025".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month, year)
}
