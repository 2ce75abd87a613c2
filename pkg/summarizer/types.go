// Package summarizer calls Kagi's Universal Summarizer and folds its
// "tag:payload" stream into a summary.
package summarizer

import "github.com/papercomputeco/kagi/pkg/jsonx"

// WordStats describe the size of the summarised document.
type WordStats struct {
	NTokens   int  `json:"n_tokens"`
	NWords    int  `json:"n_words"`
	NPages    int  `json:"n_pages"`
	TimeSaved int  `json:"time_saved"`
	Length    *int `json:"length"`
}

// ResponseMetadata describes the model run that produced the summary.
type ResponseMetadata struct {
	Speed           *float64 `json:"speed"`
	Tokens          int      `json:"tokens"`
	TotalTimeSecond float64  `json:"total_time_second"`
	Model           string   `json:"model"`
	Version         string   `json:"version"`
	Cost            float64  `json:"cost"`
}

// Result is the summary returned once the stream completes.
type Result struct {
	OutputText       string           `json:"output_text"`
	Markdown         string           `json:"markdown"`
	Status           string           `json:"status"`
	WordStats        WordStats        `json:"word_stats"`
	ResponseMetadata ResponseMetadata `json:"response_metadata"`
	ElapsedSeconds   *float64         `json:"elapsed_seconds"`
	Title            string           `json:"title"`
}

// Update is one intermediate or final state of a streaming summary.
type Update struct {
	OutputText string    `json:"output_text"`
	Status     string    `json:"status"`
	WordStats  WordStats `json:"word_stats"`
	Tokens     int       `json:"tokens"`
	Type       string    `json:"type"`
}

// IsFinal reports whether u is the terminal update.
func (u Update) IsFinal() bool {
	return u.Type == TagFinal
}

// frame is the decoded payload of one update or final record.
type frame struct {
	OutputText     string
	Status         string
	WordStats      WordStats
	ElapsedSeconds *float64
	Markdown       string
	Metadata       ResponseMetadata
	Title          string
	Tokens         int
	Type           string
}

// decodeFrame reads a record field by field. A field of the wrong type keeps
// its default so one odd value never discards the record.
func decodeFrame(payload string) (*frame, bool) {
	rec, ok := jsonx.Record(payload)
	if !ok {
		return nil, false
	}
	data := rec.Get("output_data")
	ws := data.Get("word_stats")
	meta := data.Get("response_metadata")

	return &frame{
		OutputText: jsonx.String(rec.Get("output_text")),
		Status:     jsonx.String(data.Get("status")),
		WordStats: WordStats{
			NTokens:   jsonx.Int(ws.Get("n_tokens")),
			NWords:    jsonx.Int(ws.Get("n_words")),
			NPages:    jsonx.Int(ws.Get("n_pages")),
			TimeSaved: jsonx.Int(ws.Get("time_saved")),
			Length:    jsonx.OptInt(ws.Get("length")),
		},
		ElapsedSeconds: jsonx.OptFloat(data.Get("elapsed_seconds")),
		Markdown:       jsonx.String(data.Get("markdown")),
		Metadata: ResponseMetadata{
			Speed:           jsonx.OptFloat(meta.Get("speed")),
			Tokens:          jsonx.Int(meta.Get("tokens")),
			TotalTimeSecond: jsonx.Float(meta.Get("total_time_second")),
			Model:           jsonx.String(meta.Get("model")),
			Version:         jsonx.String(meta.Get("version")),
			Cost:            jsonx.Float(meta.Get("cost")),
		},
		Title:  jsonx.String(data.Get("title")),
		Tokens: jsonx.Int(rec.Get("tokens")),
		Type:   jsonx.String(rec.Get("type")),
	}, true
}

func (f *frame) result() *Result {
	return &Result{
		OutputText:       f.OutputText,
		Markdown:         f.Markdown,
		Status:           f.Status,
		WordStats:        f.WordStats,
		ResponseMetadata: f.Metadata,
		ElapsedSeconds:   f.ElapsedSeconds,
		Title:            f.Title,
	}
}

func (f *frame) update() Update {
	typ := f.Type
	if typ == "" {
		typ = TagUpdate
	}
	return Update{
		OutputText: f.OutputText,
		Status:     f.Status,
		WordStats:  f.WordStats,
		Tokens:     f.Tokens,
		Type:       typ,
	}
}
