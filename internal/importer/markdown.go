package importer

import (
	"bufio"
	"io"
	"os"
	"strings"
)

const (
	questionPrefix = "Q:"
	answerPrefix   = "A:"
	separator      = "---"
)

type blockState int

const (
	seeking blockState = iota
	inQuestion
	inAnswer
	inOther
)

func parseMarkdownFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only card file.
			_ = cerr
		}
	}()
	return ParseMarkdown(file)
}

// ParseMarkdown reads Q:/A: blocks. A card runs from a Q: line to the next
// Q: line or a --- separator. Question and answer may span several lines.
// Other "X:" prefixed lines, such as C: context, are ignored together with
// their continuation lines.
func ParseMarkdown(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	var (
		entries  []Entry
		question []string
		answer   []string
		state    = seeking
	)

	flush := func() {
		q := strings.TrimSpace(strings.Join(question, "\n"))
		a := strings.TrimSpace(strings.Join(answer, "\n"))
		if q != "" {
			entries = append(entries, Entry{Question: q, Answer: a})
		}
		question, answer = nil, nil
		state = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.TrimSpace(line) == separator:
			flush()
		case strings.HasPrefix(line, questionPrefix):
			if state != seeking {
				flush()
			}
			state = inQuestion
			question = append(question, strings.TrimPrefix(line[len(questionPrefix):], " "))
		case strings.HasPrefix(line, answerPrefix) && state != seeking:
			state = inAnswer
			answer = append(answer, strings.TrimPrefix(line[len(answerPrefix):], " "))
		case isOtherPrefix(line) && state != seeking:
			state = inOther
		case state == inQuestion:
			question = append(question, line)
		case state == inAnswer:
			answer = append(answer, line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// isOtherPrefix matches a single upper-case letter followed by a colon.
func isOtherPrefix(line string) bool {
	return len(line) >= 2 && line[0] >= 'A' && line[0] <= 'Z' && line[1] == ':'
}
