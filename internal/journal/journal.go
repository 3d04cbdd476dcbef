// Package journal records the writes a panel sends to its store and exports
// them as CSV or JSON.
package journal

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/san-kum/chaospanel/internal/param"
)

type Entry struct {
	Seq     int
	Elapsed time.Duration
	param.Write
}

// Recorder is a Store that logs every write and then forwards it to the
// wrapped store, if any.
type Recorder struct {
	store   param.Store
	start   time.Time
	now     func() time.Time
	entries []Entry
}

func NewRecorder(store param.Store) *Recorder {
	return &Recorder{store: store, start: time.Now(), now: time.Now}
}

func (r *Recorder) record(w param.Write) {
	r.entries = append(r.entries, Entry{Seq: len(r.entries) + 1, Elapsed: r.now().Sub(r.start), Write: w})
	if r.store != nil {
		w.Apply(r.store)
	}
}

func (r *Recorder) SetInt(code param.Code, v int) {
	r.record(param.Write{Code: code, Kind: param.KindInt, Int: v})
}

func (r *Recorder) SetFloat(code param.Code, v float64) {
	r.record(param.Write{Code: code, Kind: param.KindFloat, Float: v})
}

func (r *Recorder) SetBool(code param.Code, v bool) {
	r.record(param.Write{Code: code, Kind: param.KindBool, Bool: v})
}

func (r *Recorder) SetVec(code param.Code, n, i int, v float64) {
	r.record(param.Write{Code: code, Kind: param.KindVec, N: n, Index: i, Float: v})
}

func (r *Recorder) SetIVec(code param.Code, n, i int, v int) {
	r.record(param.Write{Code: code, Kind: param.KindIVec, N: n, Index: i, Int: v})
}

func (r *Recorder) SetString(code param.Code, i int, v string) {
	r.record(param.Write{Code: code, Kind: param.KindString, Index: i, Str: v})
}

// Entries returns the recorded writes in order.
func (r *Recorder) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Recorder) Len() int { return len(r.entries) }

// Series returns the numeric values written to one component of code, in
// order. Scalars use index 0.
func Series(entries []Entry, code param.Code, index int) []float64 {
	var out []float64
	for _, e := range entries {
		if e.Code != code || e.Kind == param.KindString || e.Index != index {
			continue
		}
		out = append(out, e.Number())
	}
	return out
}

func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"seq", "elapsed_ms", "call", "code", "kind", "n", "index", "value"}); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			strconv.Itoa(e.Seq),
			strconv.FormatFloat(float64(e.Elapsed)/float64(time.Millisecond), 'f', 3, 64),
			e.String(),
			strconv.Itoa(int(e.Code)),
			string(e.Kind),
			strconv.Itoa(e.N),
			strconv.Itoa(e.Index),
			e.ValueText(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses rows written by WriteCSV. Rows that do not parse are
// skipped.
func ReadCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Entry{}, nil
	}

	entries := make([]Entry, 0, len(records)-1)
	for _, rec := range records[1:] {
		e, ok := parseRow(rec)
		if !ok {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseRow(rec []string) (Entry, bool) {
	if len(rec) != 8 {
		return Entry{}, false
	}
	seq, err1 := strconv.Atoi(rec[0])
	ms, err2 := strconv.ParseFloat(rec[1], 64)
	code, err3 := strconv.Atoi(rec[3])
	n, err4 := strconv.Atoi(rec[5])
	index, err5 := strconv.Atoi(rec[6])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
		return Entry{}, false
	}

	w := param.Write{Code: param.Code(code), Kind: param.Kind(rec[4]), N: n, Index: index}
	var err error
	switch w.Kind {
	case param.KindInt, param.KindIVec:
		w.Int, err = strconv.Atoi(rec[7])
	case param.KindFloat, param.KindVec:
		w.Float, err = strconv.ParseFloat(rec[7], 64)
	case param.KindBool:
		w.Bool, err = strconv.ParseBool(rec[7])
	case param.KindString:
		w.Str = rec[7]
	default:
		return Entry{}, false
	}
	if err != nil {
		return Entry{}, false
	}
	return Entry{Seq: seq, Elapsed: time.Duration(ms * float64(time.Millisecond)), Write: w}, true
}

type jsonEntry struct {
	Seq       int     `json:"seq"`
	ElapsedMs float64 `json:"elapsed_ms"`
	Call      string  `json:"call"`
	Code      int     `json:"code"`
	Kind      string  `json:"kind"`
	N         int     `json:"n,omitempty"`
	Index     int     `json:"index"`
	Value     string  `json:"value"`
}

func WriteJSON(w io.Writer, entries []Entry) error {
	out := make([]jsonEntry, len(entries))
	for i, e := range entries {
		out[i] = jsonEntry{
			Seq:       e.Seq,
			ElapsedMs: float64(e.Elapsed) / float64(time.Millisecond),
			Call:      e.String(),
			Code:      int(e.Code),
			Kind:      string(e.Kind),
			N:         e.N,
			Index:     e.Index,
			Value:     e.ValueText(),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
