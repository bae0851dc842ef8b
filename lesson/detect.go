package lesson

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"

	"lbe/markup"
)

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

// enough to see BOM and document prolog
const headerSize = 1024

var lessonType = filetype.NewType("html", "text/html")

func init() {
	filetype.AddMatcher(lessonType, isLessonHeader)
}

// isLessonHeader recognizes HTML document or fragment starting with a tag,
// possibly after BOM, white space or comments.
func isLessonHeader(buf []byte) bool {
	if enc := detectUTF(buf); enc != encUnknown {
		if enc != encUTF8 {
			// wide encodings are decoded before looking inside
			data, err := io.ReadAll(selectReader(bytes.NewReader(buf), enc))
			if err != nil && len(data) == 0 {
				return false
			}
			buf = data
		} else {
			buf = buf[3:]
		}
	}
	buf = bytes.TrimLeft(buf, " \t\r\n\f")
	if markup.IsDocument(buf) {
		return true
	}
	return len(buf) > 1 && buf[0] == '<' && (isLetter(buf[1]) || buf[1] == '!')
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isLessonExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	header, err := readHeader(path)
	if err != nil {
		return false, err
	}
	kind, err := filetype.Archive(header)
	if err != nil {
		return false, nil
	}
	return kind == matchers.TypeZip, nil
}

func isLessonFile(path string) (bool, srcEncoding, error) {
	if !isLessonExt(path) {
		return false, encUnknown, nil
	}
	header, err := readHeader(path)
	if err != nil {
		return false, encUnknown, err
	}
	return matchLesson(header)
}

func isLessonInArchive(f *zip.File) (bool, srcEncoding, error) {
	if !isLessonExt(f.FileHeader.Name) {
		return false, encUnknown, nil
	}
	r, err := f.Open()
	if err != nil {
		return false, encUnknown, err
	}
	defer r.Close()

	header := make([]byte, headerSize)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, encUnknown, err
	}
	return matchLesson(header[:n])
}

func matchLesson(header []byte) (bool, srcEncoding, error) {
	if !filetype.Is(header, lessonType.Extension) {
		return false, encUnknown, nil
	}
	return true, detectUTF(header), nil
}

func readHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header := make([]byte, headerSize)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return header[:n], nil
}

func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF8BOM3(buf):
		return encUTF8
	// UTF-32 LE BOM starts with UTF-16 LE one
	case isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

// selectReader strips BOM and decodes UTF-16/32 input into UTF-8.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		return r
	case encUTF8:
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
	case encUTF16BigEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF16LittleEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF32BigEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder())
	case encUTF32LittleEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder())
	}
	panic(fmt.Sprintf("unexpected source encoding %d", enc))
}

// readLesson returns body markup of a lesson source. Without BOM encoding is
// taken from <meta> declarations.
func readLesson(r io.Reader, enc srcEncoding) (string, error) {
	src := selectReader(r, enc)
	if enc == encUnknown {
		var err error
		if src, err = markup.NewReader(src, "text/html"); err != nil {
			return "", err
		}
	}
	body, err := markup.Body(src)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(body), nil
}
