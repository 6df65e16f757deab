package validate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
)

type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// StdinPath - ReplayFile читает события из os.Stdin.
const StdinPath = "-"

const maxLineBytes = 10 << 20

// ApplyFunc - что сделать с валидным событием.
type ApplyFunc func(ctx context.Context, ev *domain.InvalidationEvent) error

// ReplaySummary - итог прогона. InvalidAt и StoppedAt - номера событий
// (строк для JSONL, элементов массива с 1 для JSON).
type ReplaySummary struct {
	Valid     int
	Invalid   int
	InvalidAt []int
	// StoppedAt - событие, на котором apply вернул ошибку; 0 если дошли до конца.
	StoppedAt int
}

func (s ReplaySummary) String() string {
	out := fmt.Sprintf("%d valid / %d invalid", s.Valid, s.Invalid)
	if s.StoppedAt > 0 {
		out += fmt.Sprintf(" / stopped at %d", s.StoppedAt)
	}
	return out
}

// DetectFormat - .json читается как один документ, всё остальное как JSONL.
func DetectFormat(path string) InputFormat {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatJSONL
}

// ReplayFile - Replay по файлу; StdinPath читает stdin (auto там значит JSONL).
func ReplayFile(ctx context.Context, validator ports.InvalidationValidator, path string, format InputFormat, apply ApplyFunc) (ReplaySummary, error) {
	if format == FormatAuto {
		format = DetectFormat(path)
	}
	if path == StdinPath {
		return Replay(ctx, validator, os.Stdin, format, apply)
	}
	f, err := os.Open(path)
	if err != nil {
		return ReplaySummary{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return Replay(ctx, validator, f, format, apply)
}

// Replay валидирует события и применяет их по порядку. Невалидные
// считаются и пропускаются; первая ошибка apply останавливает прогон, чтобы
// его можно было продолжить с StoppedAt, когда кэш поднимется.
//
// JSON - один объект события или массив событий; JSONL - событие на строку,
// пустые строки пропускаются.
func Replay(ctx context.Context, validator ports.InvalidationValidator, r io.Reader, format InputFormat, apply ApplyFunc) (ReplaySummary, error) {
	var sum ReplaySummary
	step := func(n int, raw []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, err := InvalidationFromJSON(ctx, validator, raw)
		if err != nil {
			sum.Invalid++
			sum.InvalidAt = append(sum.InvalidAt, n)
			return nil
		}
		if err := apply(ctx, ev); err != nil {
			sum.StoppedAt = n
			return fmt.Errorf("apply event %d: %w", n, err)
		}
		sum.Valid++
		return nil
	}

	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(r)
		if err != nil {
			return sum, fmt.Errorf("read input: %w", err)
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != '[' {
			return sum, step(1, raw)
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return sum, fmt.Errorf("%w: invalid json array: %v", ErrInvalidMessage, err)
		}
		for i, item := range items {
			if err := step(i+1, item); err != nil {
				return sum, err
			}
		}
		return sum, nil

	case FormatJSONL:
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64<<10), maxLineBytes)
		for n := 1; sc.Scan(); n++ {
			line := bytes.TrimSpace(sc.Bytes())
			if len(line) == 0 {
				continue
			}
			if err := step(n, line); err != nil {
				return sum, err
			}
		}
		if err := sc.Err(); err != nil {
			return sum, fmt.Errorf("scan: %w", err)
		}
		return sum, nil
	}
	return sum, fmt.Errorf("unsupported format: %s", format)
}
