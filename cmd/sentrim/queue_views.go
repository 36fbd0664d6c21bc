package main

import (
	"fmt"
	"sort"
	"strings"

	"sentrim/internal/queue"
)

func buildQueueStatusRows(stats map[queue.Status]int) [][]string {
	if len(stats) == 0 {
		return nil
	}
	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, string(key))
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{formatStatusLabel(key), fmt.Sprintf("%d", stats[queue.Status(key)])})
	}
	return rows
}

func buildQueueListRows(items []*queue.Item) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		cut := "-"
		if item.CutSeconds > 0 {
			cut = fmt.Sprintf("%.1fs", item.CutSeconds)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", item.ID),
			item.Base,
			formatStatusLabel(string(item.Status)),
			cut,
			item.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return rows
}

func formatStatusLabel(status string) string {
	label := strings.ReplaceAll(strings.TrimSpace(status), "_", " ")
	if label == "" {
		return "Unknown"
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
