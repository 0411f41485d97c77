package jobsearchinfra

import (
	"testing"

	"github.com/Abraxas-365/careerkit/career/jobsearch"
)

func TestCascadeValuePicksFirstMatch(t *testing.T) {
	values := map[string]string{
		"a.vt":        "Go Developer",
		"div.title a": "Fallback Title",
	}
	get := func(sel string) (string, bool) {
		v, ok := values[sel]
		return v, ok
	}

	got := cascadeValue(jobsearch.FieldSelectors{"div.missing", "a.vt", "div.title a"}, get)
	if got != "Go Developer" {
		t.Errorf("expected first matching selector to win, got %q", got)
	}
}

func TestCascadeValueSkipsBlankMatches(t *testing.T) {
	get := func(sel string) (string, bool) {
		switch sel {
		case "first":
			return "   ", true
		case "second":
			return "Acme", true
		}
		return "", false
	}

	if got := cascadeValue(jobsearch.FieldSelectors{"first", "second"}, get); got != "Acme" {
		t.Errorf("blank value should not win the cascade, got %q", got)
	}
}

func TestCascadeValueAllMiss(t *testing.T) {
	get := func(string) (string, bool) { return "", false }
	if got := cascadeValue(jobsearch.FieldSelectors{"a", "b"}, get); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

func TestAbsolutizeLink(t *testing.T) {
	cases := []struct {
		origin, href, want string
	}{
		{"https://jobs.dou.ua", "/vacancies/123456/", "https://jobs.dou.ua/vacancies/123456/"},
		{"https://jobs.dou.ua", "https://other.example.com/job", "https://other.example.com/job"},
		{"https://www.linkedin.com", "jobs/view/42", "https://www.linkedin.com/jobs/view/42"},
		{"https://jobs.dou.ua", "", ""},
		{"https://jobs.dou.ua", "   ", ""},
	}
	for _, c := range cases {
		if got := absolutizeLink(c.origin, c.href); got != c.want {
			t.Errorf("absolutizeLink(%q, %q) = %q, want %q", c.origin, c.href, got, c.want)
		}
	}
}

func TestIsHTTPLink(t *testing.T) {
	if !isHTTPLink("https://jobs.dou.ua/vacancies/1/") {
		t.Error("https link should pass")
	}
	if isHTTPLink("javascript:void(0)") {
		t.Error("javascript link should fail")
	}
	if isHTTPLink("") {
		t.Error("empty link should fail")
	}
}

func TestMentionsUkraine(t *testing.T) {
	yes := []string{
		"Київ, Україна · Remote",
		"Kyiv, Ukraine (hybrid)",
		"Харьков, Украина",
	}
	for _, s := range yes {
		if !mentionsUkraine(s) {
			t.Errorf("%q should match", s)
		}
	}
	if mentionsUkraine("Warsaw, Poland") {
		t.Error("non-Ukraine location should not match")
	}
}

func TestHitsLoginWall(t *testing.T) {
	gated := []string{
		"https://www.linkedin.com/login?fromSignIn=true",
		"https://www.linkedin.com/checkpoint/challenge/abc",
		"https://www.linkedin.com/authwall?trk=...",
		"https://www.linkedin.com/uas/login",
	}
	for _, loc := range gated {
		if !hitsLoginWall(loc) {
			t.Errorf("%q should count as gated", loc)
		}
	}

	if hitsLoginWall("https://www.linkedin.com/jobs/search/?keywords=golang") {
		t.Error("results page should not count as gated")
	}
}

func TestDigits(t *testing.T) {
	if got := digits("/vacancies/123456/"); got != "123456" {
		t.Errorf("digits = %q", got)
	}
	if got := digits("jobs/view/9-short-77777"); got != "77777" {
		t.Errorf("longest run should win, got %q", got)
	}
	if got := digits("no numbers"); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}
