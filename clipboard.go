package main

import (
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
	"golang.org/x/net/html"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func isRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf") || strings.Contains(text, "\\rtf1")
}

func isHTML(text string) bool {
	trimmed := strings.TrimSpace(text)
	return strings.HasPrefix(trimmed, "<") &&
		(strings.Contains(trimmed, "<html") || strings.Contains(trimmed, "<body") ||
			strings.Contains(trimmed, "<div") || strings.Contains(trimmed, "<p"))
}

// cleanClipboardText turns a clipboard payload into plain text with \n line endings.
func cleanClipboardText(text string) string {
	switch {
	case text == "":
		return text
	case isRTF(text):
		text = extractTextFromRTF(text)
	case isHTML(text):
		text = extractTextFromHTML(text)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			return r
		}
		return -1
	}, text)
}

var htmlBlockTags = map[string]bool{
	"p": true, "div": true, "li": true, "tr": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "blockquote": true, "pre": true,
}

var htmlSkippedTags = map[string]bool{"head": true, "script": true, "style": true, "title": true}

func extractTextFromHTML(doc string) string {
	z := html.NewTokenizer(strings.NewReader(doc))
	var out strings.Builder
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return tidyLines(out.String())
		case html.TextToken:
			if skip == 0 {
				out.WriteString(collapseSpace(string(z.Text())))
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if htmlSkippedTags[tag] && tt == html.StartTagToken {
				skip++
			}
			if tag == "br" {
				out.WriteByte('\n')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if htmlSkippedTags[tag] && skip > 0 {
				skip--
			}
			if htmlBlockTags[tag] {
				out.WriteByte('\n')
			}
		}
	}
}

func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" {
			return " "
		}
		return ""
	}
	out := strings.Join(fields, " ")
	if unicode.IsSpace(rune(s[0])) {
		out = " " + out
	}
	if unicode.IsSpace(rune(s[len(s)-1])) {
		out += " "
	}
	return out
}

// tidyLines trims every line and drops the empty ones.
func tidyLines(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// RTF destinations whose groups carry no document text.
var rtfSkippedGroups = []string{"\\fonttbl", "\\colortbl", "\\stylesheet", "\\info", "\\*"}

func extractTextFromRTF(rtf string) string {
	var out strings.Builder
	out.Grow(len(rtf))
	for i := 0; i < len(rtf); i++ {
		switch c := rtf[i]; {
		case c == '{':
			if skipsGroup(rtf[i+1:]) {
				i = groupEnd(rtf, i)
			}
		case c == '}', c == '\r', c == '\n':
		case c == '\\':
			i = rtfControl(rtf, i, &out)
		case c >= 32 && c < 127, c == '\t':
			out.WriteByte(c)
		}
	}
	return strings.TrimSpace(out.String())
}

func skipsGroup(rest string) bool {
	for _, prefix := range rtfSkippedGroups {
		if strings.HasPrefix(rest, prefix) {
			return true
		}
	}
	return false
}

// groupEnd returns the index of the brace closing the group opened at start.
func groupEnd(rtf string, start int) int {
	depth := 0
	for i := start; i < len(rtf); i++ {
		switch rtf[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(rtf) - 1
}

// rtfControl writes the text a control sequence at rtf[i] stands for and
// returns the index of its last byte.
func rtfControl(rtf string, i int, out *strings.Builder) int {
	if i+1 >= len(rtf) {
		return i
	}
	next := rtf[i+1]
	switch {
	case next == '\'' && i+3 < len(rtf):
		if v, err := strconv.ParseUint(rtf[i+2:i+4], 16, 8); err == nil {
			out.WriteRune(rune(v))
			return i + 3
		}
		return i + 1
	case next == '\\', next == '{', next == '}':
		out.WriteByte(next)
		return i + 1
	case next == '~':
		out.WriteByte(' ')
		return i + 1
	case isASCIILetter(next):
		j := i + 1
		for j < len(rtf) && isASCIILetter(rtf[j]) {
			j++
		}
		word := rtf[i+1 : j]
		for j < len(rtf) && (rtf[j] == '-' || (rtf[j] >= '0' && rtf[j] <= '9')) {
			j++
		}
		if j < len(rtf) && rtf[j] == ' ' {
			j++
		}
		switch word {
		case "par", "line":
			out.WriteByte('\n')
		case "tab":
			out.WriteByte('\t')
		}
		return j - 1
	}
	return i + 1
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
