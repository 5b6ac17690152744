package filter

import (
	"net/url"
	"strings"

	"draftmon/internal/event"
)

// Known non-content domains (paper-mill agencies, tool vendors, news portals)
// that regularly surface in search results. Matched as substrings of the
// event URL host.
var blacklist = []string{
	"acabridge.cn",
	"editsprings.com",
	"xueshut.com",
	"xueshulin.com",
	"100xuexi.com",
	"xueshubang.org",
	"163.com",
	"paperqq.cn",
	"papernex.cn",
	"paperface.cn",
	"paperbert.com",
	"csdnimg.cn",
	"sohu.com",
	"qq.com",
}

// URL path fragments suggesting a discussion, question or forum thread.
var keepPatterns = []string{"/question", "/p/", "/r/", "/tieba.baidu.com/p", "thread"}

// Help-seeking title keywords, language-mixed.
var wantWords = []string{"求助", "帮忙", "怎么办", "怎么写", "question", "help", "降重"}

// Run drops events from blacklisted domains and keeps only events whose URL
// path or title suggests a post worth replying to. Order is preserved; the
// function is pure and idempotent.
func Run(events []event.Event) []event.Event {
	kept := make([]event.Event, 0, len(events))
	for _, ev := range events {
		if Keep(ev) {
			kept = append(kept, ev)
		}
	}
	return kept
}

// Keep reports whether a single event survives both rejection checks.
func Keep(ev event.Event) bool {
	host, path := splitURL(ev.URL)

	for _, bad := range blacklist {
		if strings.Contains(host, bad) {
			return false
		}
	}

	for _, pat := range keepPatterns {
		if strings.Contains(path, pat) {
			return true
		}
	}
	title := strings.ToLower(ev.Title)
	for _, w := range wantWords {
		if strings.Contains(title, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

// splitURL returns the lower-cased host and path of the event URL, promoting
// bare hosts to absolute URLs first. Unparseable URLs yield empty parts.
func splitURL(raw string) (host, path string) {
	if !strings.HasPrefix(raw, "http") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", ""
	}
	return strings.ToLower(u.Host), strings.ToLower(u.Path)
}
