package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sync"
)

// CSVSink writes records as CSV rows under a fixed header.
type CSVSink struct {
	closer io.Closer
	writer *csv.Writer
	mu     sync.Mutex
}

func NewCSVSink(filename string) (*CSVSink, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV file: %w", err)
	}
	s, err := NewCSVWriterSink(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	s.closer = file
	return s, nil
}

// NewCSVWriterSink writes to w; closing the sink flushes but does not close w.
func NewCSVWriterSink(w io.Writer) (*CSVSink, error) {
	s := &CSVSink{writer: csv.NewWriter(w)}
	if err := s.writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	s.writer.Flush()
	return s, s.writer.Error()
}

func (s *CSVSink) Write(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writer.Write(rec.csvRow()); err != nil {
		return fmt.Errorf("failed to write CSV row %d: %w", rec.SimulationID, err)
	}
	s.writer.Flush()
	return s.writer.Error()
}

func (s *CSVSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writer.Flush()
	err := s.writer.Error()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
