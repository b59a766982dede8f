package services

import (
	"context"
	"strings"
	"time"

	"internhub-api/internal/logger"
	"internhub-api/internal/notify"
	"internhub-api/internal/transport/dto"
)

func now() time.Time {
	return time.Now().UTC()
}

// paginate slices one page out of an already sorted list.
func paginate[T any](items []T, p dto.Pagination) []T {
	start := p.Offset()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.Limit < end-start {
		end = start + p.Limit
	}
	return items[start:end]
}

// splitList parses a comma separated query value, dropping blanks.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// intersectsFold reports whether have and want share an element, ignoring case.
func intersectsFold(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[strings.ToLower(w)]; ok {
			return true
		}
	}
	return false
}

// unknownFields returns the keys in fields that are not in allowed.
func unknownFields(fields []string, allowed map[string]struct{}) []string {
	var bad []string
	for _, f := range fields {
		if _, ok := allowed[f]; !ok {
			bad = append(bad, f)
		}
	}
	return bad
}

func fieldSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// publish sends an event and only logs on failure.
func publish(ctx context.Context, pub notify.Publisher, log logger.Logger, event notify.Event) {
	if pub == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = now()
	}
	if err := pub.Publish(ctx, event); err != nil {
		log.Warn("notification publish failed", map[string]interface{}{
			"event": string(event.Type),
			"error": err.Error(),
		})
	}
}
