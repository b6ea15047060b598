package interfaces

import (
	"sort"
	"strings"
	"time"
)

// TimestampFormat is the ISO-8601 layout used for Record.Timestamp.
// Timestamps are always rendered in UTC with millisecond precision.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in TimestampFormat.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// Metadata is the optional schemaless payload attached to a Record.
// It is always a JSON object; validation happens at the HTTP boundary.
type Metadata map[string]any

// Record is one item in the record store.
// Field names are the stable storage and wire shape.
type Record struct {
	ID          string   `json:"id" dynamodbav:"id"`
	Title       string   `json:"title" dynamodbav:"title"`
	Description string   `json:"description" dynamodbav:"description"`
	Timestamp   string   `json:"timestamp" dynamodbav:"timestamp"`
	Metadata    Metadata `json:"metadata,omitempty" dynamodbav:"metadata,omitempty"`
}

// Time parses Timestamp. Unparseable timestamps yield the zero time.
func (r Record) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, r.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SortRecordsNewestFirst orders records by timestamp descending.
// Records with equal timestamps keep their relative order.
func SortRecordsNewestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Time().After(records[j].Time())
	})
}

// SecretDescriptor is a read-only projection of a secret registry entry.
type SecretDescriptor struct {
	Name            string            `json:"name"`
	ARN             string            `json:"arn"`
	Description     string            `json:"description,omitempty"`
	Tags            map[string]string `json:"tags"`
	CreatedDate     *time.Time        `json:"createdDate,omitempty"`
	LastChangedDate *time.Time        `json:"lastChangedDate,omitempty"`
}

// TagPairs returns the descriptor's tags as sorted "key=value" strings.
func (s SecretDescriptor) TagPairs() []string {
	pairs := make([]string, 0, len(s.Tags))
	for k, v := range s.Tags {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs
}

// SortSecretsByName orders descriptors by name ascending.
func SortSecretsByName(secrets []SecretDescriptor) {
	sort.SliceStable(secrets, func(i, j int) bool {
		return secrets[i].Name < secrets[j].Name
	})
}

// TagFilter selects secrets carrying Key, and Value when it is non-empty.
type TagFilter struct {
	Key   string
	Value string
}

// ParseTagFilter parses "key" or "key=value". The split happens at the
// first '=' so values may themselves contain '='.
func ParseTagFilter(raw string) TagFilter {
	key, value, _ := strings.Cut(raw, "=")
	return TagFilter{Key: key, Value: value}
}

// HasValue reports whether the filter constrains the tag value.
func (f TagFilter) HasValue() bool {
	return f.Value != ""
}

// String renders the filter back in "key" or "key=value" form.
func (f TagFilter) String() string {
	if !f.HasValue() {
		return f.Key
	}
	return f.Key + "=" + f.Value
}

// Matches reports whether tags satisfy the filter.
func (f TagFilter) Matches(tags map[string]string) bool {
	v, ok := tags[f.Key]
	if !ok {
		return false
	}
	return !f.HasValue() || v == f.Value
}
