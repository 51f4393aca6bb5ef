package service

import (
	"net/url"
	"strings"

	"gobi/internal/domain"
	"gobi/internal/index"
)

// FuserConfig controls retrieval depth and citation rendering.
type FuserConfig struct {
	DocK          int
	SummaryHits   int
	MinScore      float64
	PublicBaseURL string
	KBSourceName  string
	SummaryLabel  string
}

// Fused is the merged outcome of querying both indexes.
type Fused struct {
	DocText string
	KB      *domain.KBRow
	KBScore float64
	Sources []domain.SourceRef

	summaryLabel string
}

// Text joins the knowledge-base answer with the labelled documentary summary input.
func (f Fused) Text() string { return f.join(f.summaryLabel) }

// Body is Text without the documentary label, for step lists.
func (f Fused) Body() string { return f.join("") }

func (f Fused) join(label string) string {
	var b strings.Builder
	if f.KB != nil {
		b.WriteString(f.KB.Answer)
	}
	if f.DocText != "" {
		b.WriteString("\n\n")
		if label != "" {
			b.WriteString(label)
			b.WriteString(" ")
		}
		b.WriteString(f.DocText)
	}
	return strings.TrimSpace(b.String())
}

// Empty reports whether neither index produced usable content.
func (f Fused) Empty() bool { return strings.TrimSpace(f.Text()) == "" }

// Fuser queries the document and knowledge-base indexes and merges the results.
type Fuser struct {
	cfg FuserConfig
}

// NewFuser applies defaults of 4 candidates and 2 summary hits.
func NewFuser(cfg FuserConfig) *Fuser {
	if cfg.DocK <= 0 {
		cfg.DocK = 4
	}
	if cfg.SummaryHits <= 0 {
		cfg.SummaryHits = 2
	}
	if cfg.KBSourceName == "" {
		cfg.KBSourceName = "KB"
	}
	return &Fuser{cfg: cfg}
}

// Fuse ranks DocK documentary candidates for citation, feeds only the best
// SummaryHits of them into the text, and adds the single best KB row. Hits
// scoring at or below MinScore are ignored.
func (f *Fuser) Fuse(query string, snap *index.Snapshot) Fused {
	out := Fused{summaryLabel: f.cfg.SummaryLabel}
	if snap == nil {
		return out
	}

	for _, hit := range snap.Knowledge.Query(query, 1) {
		if hit.Score <= f.cfg.MinScore {
			continue
		}
		if row, ok := snap.Row(hit.Record.Ordinal); ok {
			out.KB = &row
			out.KBScore = hit.Score
			if row.Link != "" {
				out.Sources = append(out.Sources, domain.SourceRef{DisplayName: f.cfg.KBSourceName, URL: row.Link})
			}
		}
	}

	var hits []domain.RetrievalHit
	for _, hit := range snap.Documents.Query(query, f.cfg.DocK) {
		if hit.Score > f.cfg.MinScore {
			hits = append(hits, hit)
		}
	}
	var texts []string
	for i := 0; i < len(hits) && i < f.cfg.SummaryHits; i++ {
		texts = append(texts, hits[i].Record.Text)
	}
	out.DocText = strings.Join(texts, " ")

	seen := make(map[string]struct{}, len(hits))
	for _, hit := range hits {
		name := hit.Record.SourceID
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out.Sources = append(out.Sources, domain.SourceRef{DisplayName: name, URL: f.sourceURL(hit.Record)})
	}
	return out
}

func (f *Fuser) sourceURL(r domain.Record) string {
	if f.cfg.PublicBaseURL == "" {
		return r.Location
	}
	return strings.TrimRight(f.cfg.PublicBaseURL, "/") + "/" + url.PathEscape(r.SourceID)
}
