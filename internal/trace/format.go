package trace

import (
	"fmt"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Format represents the output format for trace events.
type Format uint8

const (
	FormatAuto   Format = iota // pick from the output path
	FormatText                 // human-readable text
	FormatNDJSON               // newline-delimited JSON
)

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
	}
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FormatEvent formats an event according to the specified format.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev)
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id,omitempty"`
	ParentID uint64            `json:"parent_id,omitempty"`
	GID      uint64            `json:"gid,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Err      string            `json:"error,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

func formatNDJSON(ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		GID:      ev.GID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Err:      ev.Err,
		Extra:    ev.Extra,
	})
	if err != nil {
		return []byte(fmt.Sprintf("{\"seq\":%d,\"error\":%q}\n", ev.Seq, err.Error()))
	}
	return append(data, '\n')
}

var kindMarks = map[Kind]string{
	KindSpanBegin: "→ ",
	KindSpanEnd:   "← ",
	KindPoint:     "• ",
	KindHeartbeat: "♡ ",
}

// formatText renders "[15:04:05.000000] #seq  → name (detail) {k=v}",
// indented two spaces per scope below run.
func formatText(ev *Event) []byte {
	b := make([]byte, 0, 96+len(ev.Name)+len(ev.Detail))
	b = append(b, '[')
	b = ev.Time.AppendFormat(b, "15:04:05.000000")
	b = fmt.Appendf(b, "] #%-5d ", ev.Seq)
	for i := 0; i < int(ev.Scope)-int(ScopeRun); i++ {
		b = append(b, "  "...)
	}
	b = append(b, kindMarks[ev.Kind]...)
	b = append(b, ev.Name...)
	if ev.Detail != "" {
		b = append(b, " ("...)
		b = append(b, ev.Detail...)
		b = append(b, ')')
	}
	if ev.Err != "" {
		b = append(b, " error: "...)
		b = append(b, ev.Err...)
	}
	if len(ev.Extra) > 0 {
		keys := make([]string, 0, len(ev.Extra))
		for k := range ev.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b = append(b, " {"...)
		for i, k := range keys {
			if i > 0 {
				b = append(b, ", "...)
			}
			b = append(b, k...)
			b = append(b, '=')
			b = append(b, ev.Extra[k]...)
		}
		b = append(b, '}')
	}
	return append(b, '\n')
}
