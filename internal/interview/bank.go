package interview

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// GeneralSkill is the bank key used for skills the bank does not know.
const GeneralSkill = "general"

// Topic holds the questions and evaluation keywords for one skill.
type Topic struct {
	Questions []string `yaml:"questions" mapstructure:"questions"`
	Keywords  []string `yaml:"keywords" mapstructure:"keywords"`
}

// Bank maps a lowercase skill key to its topic.
type Bank map[string]Topic

// Keys returns the bank keys in sorted order.
func (b Bank) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve maps a skill name to a bank key. An exact case-insensitive match wins,
// then substring containment in either direction over keys in sorted order.
// Unknown skills resolve to GeneralSkill.
func (b Bank) Resolve(skill string) string {
	normalized := strings.ToLower(strings.TrimSpace(skill))
	if normalized == "" {
		return GeneralSkill
	}
	if _, ok := b[normalized]; ok {
		return normalized
	}

	words := strings.Fields(normalized)
	for _, key := range b.Keys() {
		if key == GeneralSkill {
			continue
		}
		// Short keys such as "go" would match inside unrelated names, so they
		// must appear as a separate word.
		if len(key) < minContainedKeyLen {
			if containsWord(words, key) {
				return key
			}
			continue
		}
		if strings.Contains(normalized, key) ||
			(len(normalized) >= minContainedKeyLen && strings.Contains(key, normalized)) {
			return key
		}
	}

	return GeneralSkill
}

const minContainedKeyLen = 3

func containsWord(words []string, key string) bool {
	for _, w := range words {
		if w == key {
			return true
		}
	}
	return false
}

// Topic returns the topic for a skill, falling back to the general topic.
func (b Bank) Topic(skill string) Topic {
	return b[b.Resolve(skill)]
}

// Validate checks that the bank can serve any skill.
func (b Bank) Validate() error {
	general, ok := b[GeneralSkill]
	if !ok || len(general.Questions) == 0 {
		return fmt.Errorf("question bank must contain a non-empty %q topic", GeneralSkill)
	}
	for key, topic := range b {
		if key != strings.ToLower(strings.TrimSpace(key)) {
			return fmt.Errorf("question bank key %q must be lowercase and trimmed", key)
		}
		if len(topic.Questions) == 0 {
			return fmt.Errorf("question bank topic %q has no questions", key)
		}
	}
	return nil
}

// LoadBankFile reads a YAML question bank. Keys are normalized to lowercase.
func LoadBankFile(path string) (Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading question bank %q: %w", path, err)
	}

	var raw map[string]Topic
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing question bank %q: %w", path, err)
	}

	bank := normalizeBank(raw)
	if err := bank.Validate(); err != nil {
		return nil, err
	}
	return bank, nil
}

// BankFromMap decodes a question bank from a generic map, as produced by viper.
func BankFromMap(raw map[string]any) (Bank, error) {
	var topics map[string]Topic
	if err := mapstructure.Decode(raw, &topics); err != nil {
		return nil, fmt.Errorf("decoding question bank: %w", err)
	}

	bank := normalizeBank(topics)
	if err := bank.Validate(); err != nil {
		return nil, err
	}
	return bank, nil
}

func normalizeBank(raw map[string]Topic) Bank {
	bank := make(Bank, len(raw))
	for key, topic := range raw {
		bank[strings.ToLower(strings.TrimSpace(key))] = topic
	}
	return bank
}

// DefaultBank returns the built-in question bank.
func DefaultBank() Bank {
	return Bank{
		"react": {
			Questions: []string{
				"What is the difference between state and props in React?",
				"Explain the concept of React hooks and give examples.",
				"How does the Virtual DOM work in React?",
				"What are React lifecycle methods? Name a few.",
				"Explain the useEffect hook and its use cases.",
				"What is the difference between controlled and uncontrolled components?",
				"How do you optimize performance in React applications?",
				"What is Redux and when would you use it?",
			},
			Keywords: []string{"state", "props", "hook", "hooks", "component", "render", "virtual", "dom", "useeffect", "usestate", "memo", "redux", "lifecycle"},
		},
		"javascript": {
			Questions: []string{
				"Explain the difference between let, const, and var.",
				"What is closure in JavaScript? Give an example.",
				"Explain promises and async/await in JavaScript.",
				"What is the event loop in JavaScript?",
				"Explain the difference between == and === operators.",
				"What are arrow functions and how do they differ from regular functions?",
				"Explain prototypal inheritance in JavaScript.",
				"What is the 'this' keyword in JavaScript?",
			},
			Keywords: []string{"closure", "scope", "promise", "async", "await", "callback", "prototype", "hoisting", "event", "loop", "this", "coercion"},
		},
		"typescript": {
			Questions: []string{
				"What are the benefits of using TypeScript over JavaScript?",
				"Explain interfaces and types in TypeScript.",
				"What are generics in TypeScript?",
				"How does TypeScript handle type inference?",
				"What is the difference between 'any' and 'unknown' types?",
				"Explain union and intersection types.",
				"What are decorators in TypeScript?",
				"How do you handle null and undefined in TypeScript?",
			},
			Keywords: []string{"type", "types", "interface", "generic", "generics", "inference", "union", "intersection", "unknown", "compiler", "strict"},
		},
		"python": {
			Questions: []string{
				"Explain the difference between lists and tuples in Python.",
				"What are decorators in Python?",
				"Explain list comprehensions with an example.",
				"What is the difference between deep copy and shallow copy?",
				"Explain Python's GIL (Global Interpreter Lock).",
				"What are generators in Python?",
				"Explain the difference between @staticmethod and @classmethod.",
				"What is the purpose of __init__ and __new__ methods?",
			},
			Keywords: []string{"list", "tuple", "immutable", "decorator", "comprehension", "generator", "yield", "gil", "copy", "class", "iterator"},
		},
		"node.js": {
			Questions: []string{
				"What is Node.js and how does it work?",
				"Explain the event-driven architecture of Node.js.",
				"What is the difference between synchronous and asynchronous code?",
				"Explain middleware in Express.js.",
				"What is npm and what is package.json?",
				"How do you handle errors in Node.js?",
				"Explain streams in Node.js.",
				"What is the purpose of the cluster module?",
			},
			Keywords: []string{"event", "loop", "async", "asynchronous", "callback", "middleware", "express", "npm", "stream", "cluster", "libuv"},
		},
		"sql": {
			Questions: []string{
				"What is the difference between INNER JOIN and OUTER JOIN?",
				"Explain normalization and denormalization.",
				"What are indexes and why are they important?",
				"Explain the difference between DELETE, TRUNCATE, and DROP.",
				"What is a primary key and foreign key?",
				"Explain ACID properties in databases.",
				"What are stored procedures?",
				"Explain the difference between WHERE and HAVING clauses.",
			},
			Keywords: []string{"join", "index", "key", "normalization", "transaction", "acid", "query", "table", "constraint", "aggregate"},
		},
		"go": {
			Questions: []string{
				"How do goroutines differ from operating system threads?",
				"When would you use a buffered channel instead of an unbuffered one?",
				"How does the context package help with cancellation?",
				"Explain how interfaces are satisfied in Go.",
				"How do you handle and wrap errors in Go?",
				"What does the race detector find and how do you run it?",
			},
			Keywords: []string{"goroutine", "channel", "select", "context", "interface", "error", "mutex", "defer", "scheduler", "race"},
		},
		GeneralSkill: {
			Questions: []string{
				"Tell me about a challenging project you worked on.",
				"How do you approach debugging complex issues?",
				"Describe your experience with version control systems.",
				"How do you stay updated with new technologies?",
				"Explain your approach to code reviews.",
				"How do you handle tight deadlines?",
				"Describe a time when you had to learn a new technology quickly.",
				"What's your experience with agile methodologies?",
			},
			Keywords: []string{"team", "project", "testing", "deadline", "learned", "communication", "review", "git", "agile", "example"},
		},
	}
}
