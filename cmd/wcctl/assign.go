package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"wecelebrate/console/internal/mapping"
)

// ruleFile is the on-disk rule set. Rules inherit clientId from the file and
// are active unless isActive is false.
type ruleFile struct {
	ClientID string      `yaml:"clientId"`
	Rules    []ruleEntry `yaml:"rules"`
}

type ruleEntry struct {
	ID         string              `yaml:"id"`
	SiteID     string              `yaml:"siteId"`
	Priority   int                 `yaml:"priority"`
	Conditions []mapping.Condition `yaml:"conditions"`
	IsActive   *bool               `yaml:"isActive"`
	IsDefault  bool                `yaml:"isDefault"`
}

func newAssignCmd() *cobra.Command {
	var (
		rulesPath string
		attrs     []string
		explain   bool
	)

	cmd := &cobra.Command{
		Use:   "assign --rules rules.yaml --attr country=US [--attr department=Sales]",
		Short: "Select a site for one employee from a rule file",
		Long:  `Evaluates a YAML mapping rule set against employee attributes. Exits 1 when no rule matches.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules(rulesPath)
			if err != nil {
				return err
			}

			employee, err := parseAttributes(attrs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if explain {
				printTrace(out, mapping.Explain(rules, employee))
			}

			rule, ok := mapping.FirstMatch(rules, employee)
			if !ok {
				fmt.Fprintln(out, "no matching rule")
				return &exitError{code: 1, msg: "no matching rule"}
			}
			fmt.Fprintf(out, "site: %s (rule %s, priority %d)\n", rule.SiteID, rule.ID, rule.Priority)
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "YAML file with the mapping rules")
	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "employee attribute as field=value (repeatable)")
	cmd.Flags().BoolVar(&explain, "explain", false, "print how each rule treated the employee")
	_ = cmd.MarkFlagRequired("rules")
	return cmd
}

func loadRules(path string) ([]mapping.MappingRule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file ruleFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	clientID := file.ClientID
	if clientID == "" {
		clientID = "local"
	}

	rules := make([]mapping.MappingRule, 0, len(file.Rules))
	for i, e := range file.Rules {
		rule := mapping.MappingRule{
			ID:         e.ID,
			ClientID:   clientID,
			SiteID:     e.SiteID,
			Priority:   e.Priority,
			Conditions: e.Conditions,
			IsActive:   e.IsActive == nil || *e.IsActive,
			IsDefault:  e.IsDefault,
		}
		if rule.ID == "" {
			rule.ID = fmt.Sprintf("rule-%d", i+1)
		}
		if err := mapping.ValidateRule(rule); err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.ID, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func parseAttributes(pairs []string) (map[string]string, error) {
	attrs := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid attribute %q (expected field=value)", p)
		}
		if !mapping.Field(k).Valid() {
			return nil, fmt.Errorf("unknown attribute %q", k)
		}
		attrs[k] = v
	}
	return attrs, nil
}

func printTrace(w io.Writer, trace []mapping.Trace) {
	for _, t := range trace {
		line := fmt.Sprintf("  [%d] %s -> %s: %s", t.Priority, t.RuleID, t.SiteID, t.Status)
		if t.FailedCondition != nil {
			line += fmt.Sprintf(" (failed %s)", t.FailedCondition)
		}
		fmt.Fprintln(w, line)
	}
}
