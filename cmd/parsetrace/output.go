package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"parsetrace/internal/trace"
)

// outcomeRecord is the NDJSON summary line written after a trace.
type outcomeRecord struct {
	Index  *int   `json:"index,omitempty"`
	Input  string `json:"input"`
	Result string `json:"result"`
	Detail string `json:"detail,omitempty"`
	Rest   string `json:"rest"`
	Error  string `json:"error,omitempty"`
}

type outcome struct {
	kind   trace.Kind
	detail string
	rest   string
	abort  error
}

func writeOutcome(out io.Writer, format trace.Format, index *int, input string, o outcome) error {
	if format == trace.FormatNDJSON {
		rec := outcomeRecord{Index: index, Input: input, Rest: o.rest}
		if o.abort != nil {
			rec.Result = "aborted"
			rec.Error = o.abort.Error()
		} else {
			rec.Result = strings.ToLower(o.kind.String())
			rec.Detail = o.detail
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode outcome: %w", err)
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err
	}

	var err error
	if o.abort != nil {
		_, err = fmt.Fprintf(out, "aborted: %v\n", o.abort)
	} else {
		_, err = fmt.Fprintf(out, "result: %s(%s) rest=%q\n", o.kind, o.detail, o.rest)
	}
	return err
}
