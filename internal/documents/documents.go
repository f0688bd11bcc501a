package documents

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/clbanning/mxj/v2"
)

const sonarFile = "sonar.json"

// Bundle is the parsed content of a report folder.
type Bundle struct {
	// Text holds every recognised file under its "### <kind> Content:" heading.
	Text  string
	Sonar *SonarReport
	Files []string
}

// Content is the full document section of the issue prompt: the file text
// followed by the SonarQube metrics summary.
func (b Bundle) Content() string {
	return b.Text + "\n\n### SonarQube Metrics Summary:\n" + SummarizeSonar(b.Sonar)
}

// ParseFolder reads the recognised files in dir in name order.
func ParseFolder(dir string) (Bundle, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Bundle{}, fmt.Errorf("reading documents folder: %w", err)
	}

	var (
		b     Bundle
		parts []string
	)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		path := filepath.Join(dir, name)

		var section string
		switch {
		case name == sonarFile:
			report, err := ParseSonar(path)
			if err != nil {
				return Bundle{}, err
			}
			b.Sonar = report
			section = "### SonarQube Issues:\n" + report.IssuesText()
		case strings.HasSuffix(name, ".xml"):
			text, err := xmlToJSON(path)
			if err != nil {
				return Bundle{}, err
			}
			section = "### XML Content:\n" + text
		case strings.HasSuffix(name, ".json"):
			data, err := os.ReadFile(path)
			if err != nil {
				return Bundle{}, fmt.Errorf("reading %s: %w", name, err)
			}
			section = "### JSON Content:\n" + string(data)
		case strings.HasSuffix(name, ".txt"):
			data, err := os.ReadFile(path)
			if err != nil {
				return Bundle{}, fmt.Errorf("reading %s: %w", name, err)
			}
			section = "### Text Content:\n" + string(data)
		default:
			continue
		}
		parts = append(parts, section)
		b.Files = append(b.Files, name)
	}

	b.Text = strings.TrimSpace(strings.Join(parts, "\n\n"))
	return b, nil
}

func xmlToJSON(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	m, err := mxj.NewMapXml(data)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	out, err := m.JsonIndent("", "  ")
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", filepath.Base(path), err)
	}
	return string(out), nil
}

// scalar holds a report value that may be encoded as a string or a number.
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = scalar(str)
		return nil
	}
	if string(data) == "null" {
		*s = ""
		return nil
	}
	*s = scalar(strings.TrimSpace(string(data)))
	return nil
}
