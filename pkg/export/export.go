package export

import "fmt"

// Format names a supported download format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// Dataset defines tabular export content.
type Dataset struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// File is a rendered download.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// ParseFormat maps a query value onto a Format, defaulting to CSV.
func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// Render produces a file named basename.<format>.
func Render(format Format, basename string, data Dataset) (*File, error) {
	switch format {
	case FormatCSV:
		body, err := renderCSV(data)
		if err != nil {
			return nil, err
		}
		return &File{Name: basename + ".csv", ContentType: "text/csv", Body: body}, nil
	case FormatPDF:
		body, err := renderPDF(data)
		if err != nil {
			return nil, err
		}
		return &File{Name: basename + ".pdf", ContentType: "application/pdf", Body: body}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}
