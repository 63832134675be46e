package llm

import (
	"strings"
)

// chatterPrefixes open the lines chat models put before the message itself.
// Matched case-insensitively against the first non-empty lines.
var chatterPrefixes = []string{
	"here is",
	"here's",
	"sure,",
	"sure!",
	"certainly",
	"of course",
	"okay,",
	"i'll ",
	"i will ",
	"based on",
	"looking at",
	"commit message:",
	"suggested commit message",
}

// closingPrefixes open the lines appended after the message.
var closingPrefixes = []string{
	"let me know",
	"feel free to",
	"hope this helps",
	"would you like",
	"if you need",
	"if you'd like",
	"this commit message",
}

// maxChatterLines bounds how many leading lines may be dropped.
const maxChatterLines = 3

// SanitizeMessage strips chat framing from a model reply: leading chatter,
// trailing sign-offs and a surrounding code fence. A reply that is nothing
// but chatter is returned unchanged so the caller still has something.
func SanitizeMessage(reply string) string {
	msg := strings.TrimSpace(reply)
	if msg == "" {
		return msg
	}
	msg = stripChatter(msg)
	msg = stripClosing(msg)
	msg = stripFence(msg)
	if msg = strings.TrimSpace(msg); msg == "" {
		return strings.TrimSpace(reply)
	}
	return msg
}

func stripChatter(msg string) string {
	lines := strings.SplitN(msg, "\n", maxChatterLines+2)
	dropped := 0
	for dropped < len(lines)-1 && dropped < maxChatterLines {
		line := strings.TrimSpace(lines[dropped])
		if line != "" && !hasAnyPrefix(line, chatterPrefixes) {
			break
		}
		dropped++
	}
	if dropped == 0 {
		return msg
	}
	return strings.Join(lines[dropped:], "\n")
}

func stripClosing(msg string) string {
	lines := strings.Split(msg, "\n")
	end := len(lines)
	for end > 1 {
		line := strings.TrimSpace(lines[end-1])
		if line != "" && !hasAnyPrefix(line, closingPrefixes) {
			break
		}
		end--
	}
	return strings.Join(lines[:end], "\n")
}

// stripFence unwraps a message the model put inside ``` or ```text fences.
func stripFence(msg string) string {
	msg = strings.TrimSpace(msg)
	if !strings.HasPrefix(msg, "```") || !strings.HasSuffix(msg, "```") || len(msg) < 6 {
		return msg
	}
	inner := strings.TrimSuffix(msg[3:], "```")
	if nl := strings.IndexByte(inner, '\n'); nl >= 0 && !strings.ContainsAny(inner[:nl], " :") {
		// Drop a language tag such as ```text.
		inner = inner[nl+1:]
	}
	return strings.TrimSpace(inner)
}

func hasAnyPrefix(line string, prefixes []string) bool {
	lower := strings.ToLower(line)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
