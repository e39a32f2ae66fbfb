// Package risk holds the rule-based clause risk detector and scorer.
package risk

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Category classifies a risk finding.
type Category string

const (
	Financial Category = "financial"
	Delivery  Category = "delivery"
	Legal     Category = "legal"
	Ambiguous Category = "ambiguous"
	Unequal   Category = "unequal"
)

// Pattern pairs a compiled expression with a human-readable label used as the
// finding's evidence.
type Pattern struct {
	Expr  *regexp.Regexp
	Label string
}

// Rule is one category's trigger table: substring keywords (medium severity)
// and regex patterns (high severity).
type Rule struct {
	Category Category
	Name     string
	Keywords []string
	Patterns []Pattern
}

// RuleSet is an immutable, ordered rule collection constructed once at
// startup and passed into detection.
type RuleSet struct {
	rules []Rule
}

func NewRuleSet(rules []Rule) RuleSet {
	return RuleSet{rules: rules}
}

// Rules returns the rules in table order.
func (rs RuleSet) Rules() []Rule {
	return rs.rules
}

// DefaultRules is the built-in trigger table for Chinese commercial
// contracts, with ARTICLE/SECTION-style English headings handled upstream by
// the segmenter.
func DefaultRules() RuleSet {
	return NewRuleSet([]Rule{
		{
			Category: Financial,
			Name:     "财务风险",
			Keywords: []string{"违约金", "赔偿", "利息", "预付款", "尾款"},
			Patterns: []Pattern{
				{regexp.MustCompile(`剩余款项.*验收合格后支付`), "付款条件模糊"},
				{regexp.MustCompile(`支付.*总价.*50%`), "预付款比例较高"},
				{regexp.MustCompile(`违约金.*\d+\.?\d*%`), "违约金比例需确认"},
			},
		},
		{
			Category: Delivery,
			Name:     "交付风险",
			Keywords: []string{"交付", "验收", "标准", "期限", "延迟", "尽快"},
			Patterns: []Pattern{
				{regexp.MustCompile(`行业通用标准`), "标准定义不清"},
				{regexp.MustCompile(`尽快处理`), "响应时间不明确"},
			},
		},
		{
			Category: Legal,
			Name:     "法律风险",
			Keywords: []string{"争议", "诉讼", "管辖", "知识产权", "保密", "纠纷"},
			Patterns: []Pattern{
				{regexp.MustCompile(`甲方所在地.*诉讼`), "管辖地单方有利"},
				{regexp.MustCompile(`友好协商解决`), "解决方式模糊"},
			},
		},
		{
			Category: Ambiguous,
			Name:     "模糊条款",
			Keywords: []string{"适当", "合理", "视情况", "协商解决"},
			Patterns: []Pattern{
				{regexp.MustCompile(`另行协商`), "关键条款留待另行约定"},
			},
		},
		{
			Category: Unequal,
			Name:     "不平等条款",
			Keywords: []string{"单方", "甲方所在地", "乙方承担全部责任"},
			Patterns: []Pattern{
				{regexp.MustCompile(`乙方承担全部责任`), "责任分配不均"},
				{regexp.MustCompile(`单方.*解除`), "单方解除权不对等"},
			},
		},
	})
}

var validCategories = map[Category]bool{
	Financial: true,
	Delivery:  true,
	Legal:     true,
	Ambiguous: true,
	Unequal:   true,
}

type ruleFile struct {
	Rules []struct {
		Category string   `yaml:"category"`
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
		Patterns []struct {
			Expr  string `yaml:"expr"`
			Label string `yaml:"label"`
		} `yaml:"patterns"`
	} `yaml:"rules"`
}

// LoadRules reads a rule table from a YAML file, replacing the built-in
// defaults. Malformed expressions fail loading; they are a deployment error,
// not a runtime condition.
func LoadRules(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("read rules: %w", err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return RuleSet{}, fmt.Errorf("parse rules: %w", err)
	}
	if len(rf.Rules) == 0 {
		return RuleSet{}, fmt.Errorf("rules file %s defines no rules", path)
	}

	rules := make([]Rule, 0, len(rf.Rules))
	for i, r := range rf.Rules {
		cat := Category(r.Category)
		if !validCategories[cat] {
			return RuleSet{}, fmt.Errorf("rule %d: unknown category %q", i, r.Category)
		}
		rule := Rule{Category: cat, Name: r.Name, Keywords: r.Keywords}
		if rule.Name == "" {
			rule.Name = r.Category
		}
		for _, p := range r.Patterns {
			expr, err := regexp.Compile(p.Expr)
			if err != nil {
				return RuleSet{}, fmt.Errorf("rule %d: pattern %q: %w", i, p.Expr, err)
			}
			rule.Patterns = append(rule.Patterns, Pattern{Expr: expr, Label: p.Label})
		}
		rules = append(rules, rule)
	}
	return NewRuleSet(rules), nil
}
