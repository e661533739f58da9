// Package robotstxt retrieves and evaluates a site's robots.txt. The
// file is advisory, nothing in this repo enforces it; the check exists so
// an operator can see what the site asks before fetching. Path rules use
// plain prefix matching, the original convention; pattern wildcards are
// out of scope.
package robotstxt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("webtable/robotstxt")

type Rule struct {
	Allow bool
	Path  string
}

type group struct {
	agents []string
	rules  []Rule
}

type File struct {
	groups []group
}

// Parse reads robots.txt syntax: User-agent lines open a group,
// Allow/Disallow lines add rules to it. Comments and unknown directives
// are skipped. An empty Disallow value disallows nothing.
func Parse(r io.Reader) (*File, error) {
	f := &File{}
	var current *group
	inAgentRun := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		directive, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		directive = strings.ToLower(strings.TrimSpace(directive))
		value = strings.TrimSpace(value)

		switch directive {
		case "user-agent":
			if !inAgentRun {
				f.groups = append(f.groups, group{})
				current = &f.groups[len(f.groups)-1]
			}
			current.agents = append(current.agents, strings.ToLower(value))
			inAgentRun = true
		case "allow", "disallow":
			inAgentRun = false
			if current == nil {
				// rules before any user-agent line are ignored
				continue
			}
			if value == "" {
				// "Disallow:" with no path disallows nothing
				continue
			}
			current.rules = append(current.rules, Rule{
				Allow: directive == "allow",
				Path:  value,
			})
		default:
			inAgentRun = false
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read robots.txt: %w", err)
	}

	return f, nil
}

// RulesFor returns the rules of the most specific group matching the
// agent, falling back to the "*" group, or nil.
func (f *File) RulesFor(agent string) []Rule {
	agent = strings.ToLower(agent)

	var best *group
	bestLen := -1
	for i := range f.groups {
		g := &f.groups[i]
		for _, a := range g.agents {
			switch {
			case a == "*":
				if bestLen < 0 {
					best, bestLen = g, 0
				}
			case strings.Contains(agent, a):
				if len(a) > bestLen {
					best, bestLen = g, len(a)
				}
			}
		}
	}
	if best == nil {
		return nil
	}
	return best.rules
}

// Allowed reports whether the agent may fetch path. The longest matching
// prefix rule decides; Allow wins a length tie; no matching rule means
// allowed.
func (f *File) Allowed(agent, path string) bool {
	if path == "" {
		path = "/"
	}

	allowed := true
	matchLen := -1
	for _, rule := range f.RulesFor(agent) {
		if !strings.HasPrefix(path, rule.Path) {
			continue
		}
		n := len(rule.Path)
		if n > matchLen || (n == matchLen && rule.Allow) {
			allowed = rule.Allow
			matchLen = n
		}
	}
	return allowed
}

// Fetch retrieves <scheme>://<host>/robots.txt with the given raw-mode
// client (as built by fetch.NewClient). A 404 means the site publishes no
// rules and yields an empty file.
func Fetch(ctx context.Context, client *resty.Client, siteURL string) (*File, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()

	u, err := url.Parse(siteURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("url %q has no scheme or host", siteURL)
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)
	span.SetAttributes(attribute.String("url", robotsURL))

	res, err := client.R().SetContext(ctx).Get(robotsURL)
	if err != nil {
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("get %s: %w", robotsURL, err)
	}

	body := res.RawBody()
	if body == nil {
		return nil, fmt.Errorf("get %s: no raw body; the client must leave responses unparsed (see fetch.NewClient)", robotsURL)
	}
	defer body.Close()

	if res.StatusCode() == 404 {
		return &File{}, nil
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "unexpected status")
		return nil, fmt.Errorf("get %s: status %d", robotsURL, res.StatusCode())
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", robotsURL, err)
	}
	return Parse(strings.NewReader(string(raw)))
}
