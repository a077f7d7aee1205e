package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Office Open XML documents are zip archives; the visible text lives in
// well-known part names as <w:t> (word) or <a:t> (drawing) runs, with
// <w:p>/<a:p> marking paragraph breaks.

var slidePart = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// readWordDocument extracts the paragraph text of a docx file.
func readWordDocument(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening docx archive: %w", err)
	}

	part, err := openPart(zr, "word/document.xml")
	if err != nil {
		return "", err
	}
	defer part.Close()

	text, err := extractRuns(part)
	if err != nil {
		return "", fmt.Errorf("parsing docx body: %w", err)
	}
	return pageHeader(1) + text, nil
}

// readPresentation extracts slide text from a pptx file, one page marker
// per slide in slide order.
func readPresentation(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pptx archive: %w", err)
	}

	type slide struct {
		num  int
		file *zip.File
	}
	var slides []slide
	for _, f := range zr.File {
		m := slidePart.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		slides = append(slides, slide{num: n, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var sb strings.Builder
	for i, s := range slides {
		rc, err := s.file.Open()
		if err != nil {
			return "", fmt.Errorf("opening slide %d: %w", s.num, err)
		}
		text, err := extractRuns(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("parsing slide %d: %w", s.num, err)
		}

		sb.WriteString(pageHeader(i + 1))
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func openPart(zr *zip.Reader, name string) (io.ReadCloser, error) {
	for _, f := range zr.File {
		if f.Name == name {
			return f.Open()
		}
	}
	return nil, fmt.Errorf("archive part %s not found", name)
}

// extractRuns walks an OOXML part and joins text runs, inserting a line
// break at each paragraph end.
func extractRuns(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var sb strings.Builder
	var para strings.Builder
	inRun := false

	flush := func() {
		if line := strings.TrimSpace(para.String()); line != "" {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		para.Reset()
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inRun = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				flush()
			}
		case xml.CharData:
			if inRun {
				para.Write(t)
			}
		}
	}
	flush()
	return sb.String(), nil
}
