package relay

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Suppressor decides whether a message must be dropped without forwarding.
// Two independent deny-lists are consulted: exact sender references and
// case-sensitive display-name substrings. A match is a deliberate silent
// drop, not an error — the endpoint still answers success.
type Suppressor struct {
	senderRefs     map[string]struct{}
	nameSubstrings []string
}

func NewSuppressor(senderRefs, nameSubstrings []string) *Suppressor {
	s := &Suppressor{senderRefs: make(map[string]struct{}, len(senderRefs))}
	for _, ref := range senderRefs {
		if ref != "" {
			s.senderRefs[ref] = struct{}{}
		}
	}
	for _, sub := range nameSubstrings {
		if sub != "" {
			s.nameSubstrings = append(s.nameSubstrings, sub)
		}
	}
	return s
}

// Match reports whether the sender reference or the resolved name hits a
// deny-list.
func (s *Suppressor) Match(senderRef, name string) bool {
	if senderRef != "" {
		if _, ok := s.senderRefs[senderRef]; ok {
			return true
		}
	}
	if name != "" {
		for _, sub := range s.nameSubstrings {
			if strings.Contains(name, sub) {
				return true
			}
		}
	}
	return false
}

// SuppressRules is the shape of the optional YAML rules file. Each platform
// section extends the lists supplied through the environment.
type SuppressRules struct {
	Slack    SuppressRuleSet `yaml:"slack"`
	Chatwork SuppressRuleSet `yaml:"chatwork"`
}

type SuppressRuleSet struct {
	SenderRefs     []string `yaml:"sender_refs"`
	NameSubstrings []string `yaml:"name_substrings"`
}

// LoadSuppressRules reads the rules file. An empty path means no file is
// configured and yields empty rules.
func LoadSuppressRules(path string) (SuppressRules, error) {
	var rules SuppressRules
	if path == "" {
		return rules, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read suppress rules %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("parse suppress rules %s: %w", path, err)
	}
	return rules, nil
}
