package extract

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// documentXMLText walks word/document.xml and returns one line per w:p.
func documentXMLText(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var (
		out    strings.Builder
		line   strings.Builder
		inText bool
	)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				line.WriteString("\t")
			case "br", "cr":
				line.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out.WriteString(line.String())
				out.WriteString("\n")
				line.Reset()
			}
		case xml.CharData:
			if inText {
				line.Write(t)
			}
		}
	}
	if line.Len() > 0 {
		out.WriteString(line.String())
	}
	return out.String(), nil
}
