// Package views computes the derived read-only projections: sorted task
// lists, status partitions, hashtag aggregation, and per-member
// productivity. Everything here is a pure function over in-memory
// collections; stores wrap them in memoized derived cells.
package views

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sebaxchen/lookSocial/internal/model"
)

// SortTasks returns a copy ordered by creation time, newest first.
// Ordering of equal timestamps keeps insertion order.
func SortTasks(tasks []model.Task) []model.Task {
	sorted := make([]model.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}

// Partitions are the status buckets of an already-sorted task list. The
// buckets are filtered from the sorted list once, not re-sorted.
type Partitions struct {
	NotStarted []model.Task `json:"not_started"`
	InProgress []model.Task `json:"in_progress"`
	Completed  []model.Task `json:"completed"`
}

func PartitionByStatus(sorted []model.Task) Partitions {
	var p Partitions
	for _, t := range sorted {
		switch t.Status {
		case model.StatusNotStarted:
			p.NotStarted = append(p.NotStarted, t)
		case model.StatusInProgress:
			p.InProgress = append(p.InProgress, t)
		case model.StatusCompleted:
			p.Completed = append(p.Completed, t)
		}
	}
	return p
}

// ExtractTags pulls hashtags out of post text: tokens starting with '#',
// lowercased, deduplicated, stored without the '#'.
func ExtractTags(text string) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, word := range strings.Fields(text) {
		if !strings.HasPrefix(word, "#") {
			continue
		}
		tag := strings.ToLower(strings.TrimLeft(word, "#"))
		tag = strings.TrimRight(tag, ".,!?:;")
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// AggregateHashtags counts tag occurrences across all posts and returns
// them sorted by count descending. Ties keep first-seen order.
func AggregateHashtags(posts []model.Post) []TagCount {
	counts := make(map[string]int)
	var order []string
	for _, p := range posts {
		for _, tag := range p.Tags {
			tag = strings.ToLower(tag)
			if _, ok := counts[tag]; !ok {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}
	result := make([]TagCount, 0, len(order))
	for _, tag := range order {
		result = append(result, TagCount{Tag: tag, Count: counts[tag]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

// CompletionRate is the percentage of completed tasks rounded to the
// nearest integer, 0 when there are no tasks.
func CompletionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

type MemberProductivity struct {
	Name           string `json:"name"`
	Avatar         string `json:"avatar"`
	TotalTasks     int    `json:"total_tasks"`
	CompletedTasks int    `json:"completed_tasks"`
	InProgress     int    `json:"in_progress"`
	NotStarted     int    `json:"not_started"`
	CompletionRate int    `json:"completion_rate"`
}

// TeamProductivity computes per-member stats by exact assignee-name
// match and returns members sorted by completion rate descending.
func TeamProductivity(members []model.TeamMember, tasks []model.Task) []MemberProductivity {
	result := make([]MemberProductivity, 0, len(members))
	for _, m := range members {
		row := MemberProductivity{Name: m.Name, Avatar: m.Avatar}
		for _, t := range tasks {
			if t.Assignee != m.Name {
				continue
			}
			row.TotalTasks++
			switch t.Status {
			case model.StatusCompleted:
				row.CompletedTasks++
			case model.StatusInProgress:
				row.InProgress++
			case model.StatusNotStarted:
				row.NotStarted++
			}
		}
		row.CompletionRate = CompletionRate(row.CompletedTasks, row.TotalTasks)
		result = append(result, row)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CompletionRate > result[j].CompletionRate
	})
	return result
}

// CountCreatedSince counts tasks created at or after the cutoff.
func CountCreatedSince(tasks []model.Task, cutoff time.Time) int {
	n := 0
	for _, t := range tasks {
		if !t.CreatedAt.Before(cutoff) {
			n++
		}
	}
	return n
}

// PriorityDistribution counts tasks per priority in one scan.
func PriorityDistribution(tasks []model.Task) map[model.TaskPriority]int {
	dist := map[model.TaskPriority]int{
		model.PriorityHigh:   0,
		model.PriorityMedium: 0,
		model.PriorityLow:    0,
	}
	for _, t := range tasks {
		dist[t.Priority]++
	}
	return dist
}
