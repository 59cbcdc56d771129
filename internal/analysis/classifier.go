package analysis

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"testinsight-backend/internal/model"
	"testinsight-backend/internal/taxonomy"
	"testinsight-backend/utilities"
)

// ErrClassificationDegraded is logged when the semantic classifier could not
// be used and the rule labels were kept. It is never returned to callers.
var ErrClassificationDegraded = errors.New("classification degraded to rules")

// Classifier assigns one topic label to a question.
type Classifier interface {
	Classify(q model.Question, subject string) string
}

// BatchClassifier labels every question of a section at once. The result maps
// each question index to its label and is always complete.
type BatchClassifier interface {
	ClassifyMany(ctx context.Context, questions []model.Question, subject string) map[int]string
}

// SemanticClassifier is an external service that maps question texts to
// labels from the given catalog. The returned map is keyed by the decimal
// index of each text.
type SemanticClassifier interface {
	ClassifyTopics(ctx context.Context, subject string, catalog []string, texts []string) (map[string]string, error)
}

// RuleClassifier labels questions using ordered keyword and pattern rules.
type RuleClassifier struct {
	tx    *taxonomy.Taxonomy
	rules map[taxonomy.Family][]Rule
}

func NewRuleClassifier(tx *taxonomy.Taxonomy) *RuleClassifier {
	return &RuleClassifier{tx: tx, rules: defaultRules()}
}

// Rules returns the ordered rule table for a subject.
func (c *RuleClassifier) Rules(subject string) []Rule {
	f, ok := taxonomy.CanonicalSubject(subject)
	if !ok {
		return nil
	}
	return append([]Rule(nil), c.rules[f]...)
}

func (c *RuleClassifier) Classify(q model.Question, subject string) string {
	return c.classifyText(q.Text, subject)
}

func (c *RuleClassifier) ClassifyMany(_ context.Context, questions []model.Question, subject string) map[int]string {
	out := make(map[int]string, len(questions))
	for i, q := range questions {
		out[i] = c.classifyText(q.Text, subject)
	}
	return out
}

func (c *RuleClassifier) classifyText(text, subject string) string {
	f, ok := taxonomy.CanonicalSubject(subject)
	if !ok {
		return taxonomy.DefaultTopic(subject)
	}
	normalized := normalizeText(text)
	if normalized != "" {
		for _, r := range c.rules[f] {
			if r.Match(normalized) {
				return r.Topic
			}
		}
	}
	return taxonomy.DefaultTopic(subject)
}

// markupTag matches a common HTML tag with optional quoted or bare attribute
// values. Bare comparisons such as "x<y" or "a<b and c>d" do not match.
var markupTag = regexp.MustCompile(`(?i)</?(?:p|br|b|i|u|em|strong|sub|sup|span|div|li|ul|ol|table|thead|tbody|tr|td|th|img|a|h[1-6]|code|pre|hr|font|small|center|blockquote)(?:\s+[a-z-]+=(?:"[^"]*"|'[^']*'|[^\s"'<>]+))*\s*/?>`)

var supOpen = regexp.MustCompile(`(?i)<sup(?:\s[^<>]*)?>`)

// normalizeText strips markup, decodes entities, lower-cases and collapses
// whitespace. Text without tags keeps its "<" and ">" characters.
func normalizeText(text string) string {
	if markupTag.MatchString(text) {
		text = supOpen.ReplaceAllString(text, "^")
		text = markupTag.ReplaceAllString(text, " ")
	}
	if strings.Contains(text, "&") {
		text = html.UnescapeString(text)
	}
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// DelegationConfig bounds calls to the semantic classifier.
type DelegationConfig struct {
	Timeout         time.Duration
	MaxPromptTokens int
}

// DelegatingClassifier asks a SemanticClassifier first and falls back to the
// wrapped RuleClassifier for the whole batch on any failure, or per question
// when a label is missing or not in the subject catalog.
type DelegatingClassifier struct {
	rules    *RuleClassifier
	semantic SemanticClassifier
	tx       *taxonomy.Taxonomy
	cfg      DelegationConfig
}

func NewDelegatingClassifier(rules *RuleClassifier, semantic SemanticClassifier, tx *taxonomy.Taxonomy, cfg DelegationConfig) *DelegatingClassifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.MaxPromptTokens <= 0 {
		cfg.MaxPromptTokens = 3000
	}
	return &DelegatingClassifier{rules: rules, semantic: semantic, tx: tx, cfg: cfg}
}

func (d *DelegatingClassifier) Classify(q model.Question, subject string) string {
	return d.ClassifyMany(context.Background(), []model.Question{q}, subject)[0]
}

func (d *DelegatingClassifier) ClassifyMany(ctx context.Context, questions []model.Question, subject string) map[int]string {
	fallback := d.rules.ClassifyMany(ctx, questions, subject)
	catalog := d.tx.Catalog(subject)
	if len(questions) == 0 || catalog == nil {
		return fallback
	}

	texts := make([]string, len(questions))
	for i, q := range questions {
		texts[i] = normalizeText(q.Text)
	}

	if tokens := estimateTokens(subject, catalog, texts); tokens > d.cfg.MaxPromptTokens {
		utilities.Warn("%v: %s batch of %d questions needs ~%d tokens (budget %d)",
			ErrClassificationDegraded, subject, len(texts), tokens, d.cfg.MaxPromptTokens)
		return fallback
	}

	labels, err := d.callWithTimeout(ctx, subject, catalog, texts)
	if err != nil {
		utilities.Warn("%v: %s: %v", ErrClassificationDegraded, subject, err)
		return fallback
	}

	parsed, err := parseLabels(labels, len(questions))
	if err != nil {
		utilities.Warn("%v: %s: %v", ErrClassificationDegraded, subject, err)
		return fallback
	}

	out := make(map[int]string, len(questions))
	for i := range questions {
		label, ok := parsed[i]
		if ok && d.tx.InCatalog(subject, label) {
			out[i] = label
			continue
		}
		out[i] = fallback[i]
	}
	return out
}

func (d *DelegatingClassifier) callWithTimeout(ctx context.Context, subject string, catalog, texts []string) (map[string]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	type result struct {
		labels map[string]string
		err    error
	}
	done := make(chan result, 1)
	go func() {
		labels, err := d.semantic.ClassifyTopics(ctx, subject, catalog, texts)
		done <- result{labels, err}
	}()

	select {
	case r := <-done:
		return r.labels, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// parseLabels converts the index keys of a response. A key that is not an
// index of the batch makes the whole response malformed.
func parseLabels(labels map[string]string, n int) (map[int]string, error) {
	if labels == nil {
		return nil, errors.New("empty response")
	}
	out := make(map[int]string, len(labels))
	for k, v := range labels {
		i, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil || i < 0 || i >= n {
			return nil, fmt.Errorf("unexpected index %q in response", k)
		}
		out[i] = strings.TrimSpace(v)
	}
	return out, nil
}

// estimateTokens approximates prompt size at four characters per token.
func estimateTokens(subject string, catalog, texts []string) int {
	chars := len(subject) + promptOverheadChars
	for _, c := range catalog {
		chars += len(c) + 2
	}
	for i, t := range texts {
		chars += len(t) + len(strconv.Itoa(i)) + 4
	}
	return (chars + 3) / 4
}

const promptOverheadChars = 400
