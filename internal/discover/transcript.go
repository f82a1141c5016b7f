package discover

import (
	"bufio"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// event is one parsed transcript line.
type event struct {
	raw gjson.Result
}

// bashCall is a Bash tool invocation found in an assistant event.
type bashCall struct {
	id      string
	command string
}

// toolOutput is a recorded tool result paired to a call by id.
type toolOutput struct {
	id   string
	text string
}

// walkEvents streams the valid JSONL events of one transcript through
// fn and returns the number of lines read. Lines carry embedded tool
// outputs and can run to megabytes, hence the large scanner ceiling.
func walkEvents(path string, fn func(event)) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 256*1024), 16*1024*1024)
	for scanner.Scan() {
		lines++
		line := scanner.Text()
		if !gjson.Valid(line) {
			continue
		}
		fn(event{raw: gjson.Parse(line)})
	}
	return lines, scanner.Err()
}

// bashCalls extracts Bash tool invocations from an assistant event.
func (e event) bashCalls() []bashCall {
	if e.raw.Get("type").String() != "assistant" {
		return nil
	}

	var calls []bashCall
	for _, tu := range e.raw.Get(`message.content.#(type=="tool_use")#`).Array() {
		if tu.Get("name").String() != "Bash" {
			continue
		}
		cmd := tu.Get("input.command").String()
		if cmd == "" {
			continue
		}
		calls = append(calls, bashCall{id: tu.Get("id").String(), command: cmd})
	}
	return calls
}

// toolResults extracts recorded tool outputs from a user event. Result
// content is either a plain string or a list of typed text parts.
func (e event) toolResults() []toolOutput {
	if e.raw.Get("type").String() != "user" {
		return nil
	}

	var outs []toolOutput
	for _, tr := range e.raw.Get(`message.content.#(type=="tool_result")#`).Array() {
		id := tr.Get("tool_use_id").String()
		if id == "" {
			continue
		}

		content := tr.Get("content")
		var text string
		if content.IsArray() {
			var parts []string
			for _, p := range content.Get(`#(type=="text")#.text`).Array() {
				parts = append(parts, p.String())
			}
			text = strings.Join(parts, "\n")
		} else {
			text = content.String()
		}
		outs = append(outs, toolOutput{id: id, text: text})
	}
	return outs
}
