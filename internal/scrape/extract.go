package scrape

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/domain"
)

// Kind tells the extractor what shape of document it was given.
type Kind string

const (
	KindHTML Kind = "html"
	KindJSON Kind = "json"
)

// Strategy names, reported so the caller can log which one produced rates.
const (
	StrategyTable    = "table"
	StrategyNextData = "nextdata"
	StrategyRegex    = "regex"
	StrategyMirror   = "mirror"
)

// Result is a partial mapping of currency code to rate produced from one
// document. An empty Rates map is a valid outcome ("nothing found"), which
// callers must keep distinct from a failed fetch.
type Result struct {
	Rates    map[string]float64
	Strategy string
}

var (
	trailingCodeRe = regexp.MustCompile(`([A-Z]{2,6})\s*$`)
	codeTokenRe    = regexp.MustCompile(`^[A-Z]{2,6}$`)
)

// Extract runs the ordered strategy cascade over a raw document and keeps
// only strictly positive, finite rates for codes in known. The first
// strategy to yield at least one rate wins; results are never merged
// across strategies, so a reliable table hit cannot be polluted by a
// spurious regex match elsewhere in the page.
func Extract(doc string, kind Kind, known map[string]struct{}) Result {
	if kind == KindJSON {
		if rates := extractMirror(doc, known); len(rates) > 0 {
			return Result{Rates: rates, Strategy: StrategyMirror}
		}
		return Result{Rates: map[string]float64{}}
	}

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err == nil {
		if rates := extractTable(parsed, known); len(rates) > 0 {
			return Result{Rates: rates, Strategy: StrategyTable}
		}
		if rates := extractNextData(parsed, known); len(rates) > 0 {
			return Result{Rates: rates, Strategy: StrategyNextData}
		}
	}
	if rates := scanWindows(doc, known); len(rates) > 0 {
		return Result{Rates: rates, Strategy: StrategyRegex}
	}
	return Result{Rates: map[string]float64{}}
}

// extractTable reads rows shaped like
//
//	<tr><td>1 USD</td><td>400,00 CUP</td></tr>
//
// taking the trailing uppercase token of the code cell and running the
// price cell through the loose number parser. Broken rows are skipped
// silently, they are expected whenever the upstream layout drifts.
func extractTable(doc *goquery.Document, known map[string]struct{}) map[string]float64 {
	rates := make(map[string]float64)

	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		codeCell := row.Find("td.name-cell")
		priceCell := row.Find("td.price-cell")
		cells := row.Find("td")
		if codeCell.Length() == 0 {
			codeCell = cells.Eq(0)
		}
		if priceCell.Length() == 0 {
			if cells.Length() < 2 {
				return
			}
			priceCell = cells.Eq(1)
		}

		m := trailingCodeRe.FindStringSubmatch(strings.TrimSpace(codeCell.Text()))
		if m == nil {
			return
		}
		code := m[1]
		if _, ok := known[code]; !ok {
			return
		}

		v, ok := ParseLooseNumber(priceCell.Text())
		if !ok || v <= 0 {
			return
		}
		rates[code] = v
	})

	return rates
}

// extractNextData pulls the hydration payload server-rendered frameworks
// embed in a well-known script tag, round-trips it through the JSON
// parser to normalize formatting, then applies the bounded-window scan.
// The round trip tolerates intervening properties and markup without
// depending on the exact payload structure.
func extractNextData(doc *goquery.Document, known map[string]struct{}) map[string]float64 {
	payload := doc.Find("script#__NEXT_DATA__").First().Text()
	if strings.TrimSpace(payload) == "" {
		return nil
	}

	var v any
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return nil
	}
	flat, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return scanWindows(string(flat), known)
}

// scanWindows looks, for each known code, for the code followed within a
// bounded window by a number directly before the base-currency suffix.
// This is the last-resort strategy when page structure changes entirely.
func scanWindows(doc string, known map[string]struct{}) map[string]float64 {
	rates := make(map[string]float64)

	for code := range known {
		if !codeTokenRe.MatchString(code) {
			continue
		}
		re := regexp.MustCompile(`(?s)` + code + `.{0,160}?(\d[\d.,]*)\s*` + domain.BaseCurrency)
		m := re.FindStringSubmatch(doc)
		if m == nil {
			continue
		}
		v, ok := ParseLooseNumber(m[1])
		if !ok || v <= 0 {
			continue
		}
		rates[code] = v
	}

	return rates
}

// extractMirror reads the JSON mirror shape {asOf?, rates: {CODE: value}}.
// Keys may be lower case and values may be localized numeric strings.
func extractMirror(doc string, known map[string]struct{}) map[string]float64 {
	node := gjson.Get(doc, "rates")
	if !node.Exists() || !node.IsObject() {
		return nil
	}

	rates := make(map[string]float64)
	node.ForEach(func(key, value gjson.Result) bool {
		code := strings.ToUpper(strings.TrimSpace(key.String()))
		if _, ok := known[code]; !ok {
			return true
		}
		v, ok := ParseLooseNumber(value.String())
		if !ok || v <= 0 {
			return true
		}
		rates[code] = v
		return true
	})

	return rates
}
