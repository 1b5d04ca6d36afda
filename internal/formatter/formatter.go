// package formatter exports queue contents and refill history to CSV, JSON, and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/qfill/internal/models"
)

// QueueToCSV converts queue entries to CSV with columns: Pos, URI, Title, Artist, Album
func QueueToCSV(entries []models.QueueEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Pos", "URI", "Title", "Artist", "Album"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range entries {
		record := []string{
			strconv.Itoa(entry.Pos + 1),
			entry.URI,
			entry.Title,
			entry.Artist,
			entry.Album,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// QueueToText converts queue entries to a numbered plain text listing
func QueueToText(entries []models.QueueEntry) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Queue: %d tracks\n\n", len(entries)))

	for _, entry := range entries {
		label := entry.URI
		if entry.Title != "" && entry.Artist != "" {
			label = fmt.Sprintf("%s - %s", entry.Artist, entry.Title)
		} else if entry.Title != "" {
			label = entry.Title
		}
		buf.WriteString(fmt.Sprintf("%d. %s\n", entry.Pos+1, label))
	}

	return buf.Bytes()
}

// QueueToJSON converts queue entries to indented JSON
func QueueToJSON(entries []models.QueueEntry) ([]byte, error) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal queue: %w", err)
	}
	return data, nil
}

// RefillsToCSV converts refill records to CSV with columns: Time, Mode, Outcome, Requested, Added, Reason, URIs
func RefillsToCSV(records []models.RefillRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Time", "Mode", "Outcome", "Requested", "Added", "Reason", "URIs"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.CreatedAt.Format("2006-01-02 15:04:05"),
			record.Mode.String(),
			record.Outcome,
			strconv.Itoa(record.Requested),
			strconv.Itoa(record.Added),
			record.Reason,
			strings.Join(record.URIs, "; "),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteQueueExport writes queue entries to a file in the requested format.
//
// Supported formats: csv, json, text. Defaults to queue.{format} when path is empty.
func WriteQueueExport(entries []models.QueueEntry, format, path string) (string, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case "csv":
		data, err = QueueToCSV(entries)
	case "json":
		data, err = QueueToJSON(entries)
	case "text", "":
		format = "text"
		data = QueueToText(entries)
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return "", err
	}

	if path == "" {
		ext := format
		if format == "text" {
			ext = "txt"
		}
		path = "queue." + ext
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
