package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/mccall/internal/domain"
)

// Render formats results with the named formatter and writes them to w.
func Render(w io.Writer, results *domain.ModelComparison, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("format %s: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// GenerateReport saves results to a timestamped file in dir using the named formatter.
func GenerateReport(results *domain.ModelComparison, format, dir string) (string, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return WriteFormatted(f, results, dir)
}
