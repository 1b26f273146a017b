// Package compare reports differences between the KC3 translation quest
// data and the wiki-derived aggregate.
//
// KC3 publishes quests.json, an object keyed by game id:
//
//	"101": {
//	    "code": "A1",
//	    "name": "はじめての「編成」！",
//	    "desc": "2隻以上の艦で編成される「艦隊」を編成せよ！",
//	    "memo": "[獲]駆逐艦白雪"
//	},
//
// Entries that are not regular quests (non-numeric keys, the "eof"
// sentinel, time-limited quests) are filtered out before comparing.
package compare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrHTTPStatus is returned when a data source answers with a non-2xx status.
var ErrHTTPStatus = errors.New("unexpected HTTP status")

// Quest is one entry of either data source.
type Quest struct {
	ID   string `json:"id" yaml:"id"`
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
	Desc string `json:"desc,omitempty" yaml:"desc,omitempty"`
	Memo string `json:"memo,omitempty" yaml:"memo,omitempty"`
}

// Dataset is an ordered set of quests keyed by id.
type Dataset struct {
	order []string
	byID  map[string]Quest
}

// NewDataset creates an empty Dataset.
func NewDataset() *Dataset {
	return &Dataset{byID: make(map[string]Quest)}
}

// Add inserts or replaces q, keeping the first position of its id.
func (d *Dataset) Add(q Quest) {
	if _, ok := d.byID[q.ID]; !ok {
		d.order = append(d.order, q.ID)
	}
	d.byID[q.ID] = q
}

// Get returns the quest with id.
func (d *Dataset) Get(id string) (Quest, bool) {
	q, ok := d.byID[id]
	return q, ok
}

// Len returns the number of quests.
func (d *Dataset) Len() int {
	return len(d.order)
}

// Quests returns the quests in insertion order.
func (d *Dataset) Quests() []Quest {
	out := make([]Quest, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.byID[id])
	}
	return out
}

// ParseKC3 decodes KC3 quests.json, keeping key order.
func ParseKC3(data []byte) (*Dataset, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("kc3 quest data is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("kc3 quest data must be a JSON object")
	}

	d := NewDataset()
	root.ForEach(func(key, value gjson.Result) bool {
		d.Add(Quest{
			ID:   key.String(),
			Code: value.Get("code").String(),
			Name: value.Get("name").String(),
			Desc: value.Get("desc").String(),
			Memo: value.Get("memo").String(),
		})
		return true
	})
	return d, nil
}

// limitedCode matches the quest code field of a wiki quest template:
// {{任务表| type =出击| 编号 =MB01| 前置 =Bd2
var limitedCode = regexp.MustCompile(`编号\s*=\s*(\w+)`)

// ParseLimitedCodes extracts the time-limited quest codes from a MediaWiki
// revisions API response. Every page in the response is scanned.
func ParseLimitedCodes(data []byte) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("wiki response is not valid JSON")
	}

	pages := gjson.GetBytes(data, "query.pages")
	if !pages.Exists() {
		return nil, fmt.Errorf("wiki response has no query.pages")
	}

	var codes []string
	pages.ForEach(func(_, page gjson.Result) bool {
		text := page.Get(`revisions.0.\*`).String()
		for _, m := range limitedCode.FindAllStringSubmatch(text, -1) {
			codes = append(codes, m[1])
		}
		return true
	})
	return codes, nil
}

// Fetcher downloads the remote data sources.
type Fetcher struct {
	Client *http.Client
}

// Get performs a GET request and returns the body.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: %w: %s", url, ErrHTTPStatus, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: failed to read body: %w", url, err)
	}
	return body, nil
}

// FetchKC3 downloads and parses KC3 quest data.
func (f *Fetcher) FetchKC3(ctx context.Context, url string) (*Dataset, error) {
	body, err := f.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseKC3(body)
}

// FetchLimitedCodes downloads the wiki's time-limited quest page.
func (f *Fetcher) FetchLimitedCodes(ctx context.Context, url string) ([]string, error) {
	body, err := f.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseLimitedCodes(body)
}

// LoadKC3File parses KC3 quest data from a local file.
func LoadKC3File(path string) (*Dataset, error) {
	// #nosec G304 - controlled path from CLI
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read kc3 quest file: %w", err)
	}
	return ParseKC3(data)
}

// isNumeric reports whether s is made only of ASCII digits.
func isNumeric(s string) bool {
	return s != "" && strings.Trim(s, "0123456789") == ""
}
