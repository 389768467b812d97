// Package extractor walks PHP parse trees and collects translatable strings
// from form-field option arrays into a translation catalogue.
package extractor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/TNAJanssen/JMSTranslationBundle2/php/docblock"
	"github.com/TNAJanssen/JMSTranslationBundle2/php/parser"
	"github.com/TNAJanssen/JMSTranslationBundle2/translation"
)

// FormExtractor recognizes form-field option arrays and extracts their
// label-like values. An instance holds configuration only; every Extract
// call runs with its own traversal state, so one extractor may serve
// concurrent extractions over independent source units.
type FormExtractor struct {
	policy    ChoicePolicy
	logger    ErrorReporter
	resolver  AnnotationResolver
	fieldKeys map[string]bool
}

func New(opts ...Option) *FormExtractor {
	e := &FormExtractor{
		policy:    ChoicesLegacy,
		resolver:  docblockResolver{},
		fieldKeys: make(map[string]bool),
	}
	for _, key := range builtinFieldKeys {
		e.fieldKeys[key] = true
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract traverses one source unit and writes every extracted message into
// the catalogue. On a fatal diagnostic (no logger attached) the unit is
// aborted; messages already added remain in the catalogue.
func (e *FormExtractor) Extract(nodes []parser.Node, cat *translation.Catalogue) error {
	t := &traversal{ex: e, cat: cat}
	for _, n := range nodes {
		if err := t.walk(n); err != nil {
			return err
		}
	}
	return nil
}

// ExtractSource parses a PHP source unit and extracts it.
func (e *FormExtractor) ExtractSource(input []byte, file string, cat *translation.Catalogue) error {
	return e.Extract(parser.Parse(input, file), cat)
}

// scopeState tracks the default translation domain of one enclosing class
// and the messages waiting for it to be resolved.
type scopeState struct {
	defaultDomain string
	pending       []*translation.Message
}

type traversal struct {
	ex     *FormExtractor
	cat    *translation.Catalogue
	scopes []*scopeState
}

func (t *traversal) currentScope() *scopeState {
	if len(t.scopes) == 0 {
		return nil
	}
	return t.scopes[len(t.scopes)-1]
}

func (t *traversal) walk(n parser.Node) error {
	switch v := n.(type) {
	case nil:
	case *parser.Class:
		t.scopes = append(t.scopes, &scopeState{})
		err := t.walkAll(v.Body)
		scope := t.currentScope()
		t.scopes = t.scopes[:len(t.scopes)-1]
		// pending messages pick up whatever default domain the class
		// ended with, even when the defaults call came after the field
		for _, m := range scope.pending {
			m.Domain = scope.defaultDomain
			t.cat.Add(m)
		}
		return err
	case *parser.MethodCall:
		t.checkDefaultsCall(v)
		if err := t.walk(v.Receiver); err != nil {
			return err
		}
		return t.walkAll(v.Args)
	case *parser.Array:
		if err := t.dispatch(v); err != nil {
			return err
		}
		for _, item := range v.Items {
			if err := t.walk(item.Key); err != nil {
				return err
			}
			if err := t.walk(item.Value); err != nil {
				return err
			}
		}
	case *parser.FuncCall:
		return t.walkAll(v.Args)
	case *parser.New:
		return t.walkAll(v.Args)
	case *parser.PropFetch:
		return t.walk(v.Receiver)
	case *parser.Assign:
		if err := t.walk(v.Target); err != nil {
			return err
		}
		return t.walk(v.Value)
	case *parser.Return:
		return t.walk(v.Value)
	case *parser.Binary:
		if err := t.walk(v.Left); err != nil {
			return err
		}
		return t.walk(v.Right)
	case *parser.Ident, *parser.Variable, *parser.String, *parser.Number, *parser.ConstFetch:
	}
	return nil
}

func (t *traversal) walkAll(nodes []parser.Node) error {
	for _, n := range nodes {
		if err := t.walk(n); err != nil {
			return err
		}
	}
	return nil
}

// defaultsChainMethods is the whitelist of builder-returning method names a
// defaults chain may consist of. Anything else means the chain's origin
// cannot be trusted and the call is ignored.
var defaultsChainMethods = map[string]bool{
	"setdefaults":      true,
	"replacedefaults":  true,
	"setoptional":      true,
	"setrequired":      true,
	"setallowedvalues": true,
	"addallowedvalues": true,
	"setallowedtypes":  true,
	"addallowedtypes":  true,
	"setfilters":       true,
}

// checkDefaultsCall records the default translation domain set by a
// resolver defaults chain such as $resolver->setDefaults([...]). The chain
// must consist of whitelisted calls only and bottom out at a bare variable.
func (t *traversal) checkDefaultsCall(call *parser.MethodCall) {
	if !defaultsChainMethods[strings.ToLower(call.Name)] {
		return
	}
	recv := call.Receiver
	for {
		link, ok := recv.(*parser.MethodCall)
		if !ok {
			break
		}
		if !defaultsChainMethods[strings.ToLower(link.Name)] {
			return
		}
		recv = link.Receiver
	}
	if _, ok := recv.(*parser.Variable); !ok {
		return
	}
	if len(call.Args) == 0 {
		return
	}
	options, ok := call.Args[0].(*parser.Array)
	if !ok {
		return
	}
	scope := t.currentScope()
	if scope == nil {
		return
	}
	for _, item := range options.Items {
		key, ok := item.Key.(*parser.String)
		if !ok || key.Value != "translation_domain" {
			continue
		}
		if value, ok := item.Value.(*parser.String); ok {
			// last one wins, like ordinary map assignment
			scope.defaultDomain = value.Value
		}
	}
}

// dispatch treats an array literal as a field option map and routes each
// recognized key to its extraction rule.
func (t *traversal) dispatch(options *parser.Array) error {
	domain, explicit := localDomain(options)
	for _, item := range options.Items {
		key, ok := item.Key.(*parser.String)
		if !ok {
			// computed keys are invisible to a syntactic tool
			continue
		}
		var err error
		switch key.Value {
		case "label":
			err = t.extractItem(item, domain, explicit)
		case "invalid_message":
			err = t.extractItem(item, "validators", true)
		case "placeholder", "empty_value":
			var handled bool
			handled, err = t.emptyValueRule(item, domain, explicit)
			if !handled && err == nil {
				err = t.extractItem(item, domain, explicit)
			}
		case "choices":
			err = t.choiceRule(options, item, domain, explicit)
		case "constraints":
			err = t.constraintsRule(item)
		case "attr":
			err = t.attrRule(item.Value, domain, explicit)
		default:
			if t.ex.fieldKeys[key.Value] {
				err = t.customKeyRule(item, domain, explicit)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// localDomain scans an option map for an inline translation_domain. The
// last string value wins; absence defers to the class default.
func localDomain(options *parser.Array) (string, bool) {
	domain := ""
	explicit := false
	for _, item := range options.Items {
		key, ok := item.Key.(*parser.String)
		if !ok || key.Value != "translation_domain" {
			continue
		}
		if value, ok := item.Value.(*parser.String); ok {
			domain = value.Value
			explicit = true
		}
	}
	return domain, explicit
}

// emptyValueRule handles placeholder/empty_value. A boolean false is an
// explicit opt-out; an array yields one candidate per item. Anything else
// falls through to generic extraction.
func (t *traversal) emptyValueRule(item *parser.ArrayItem, domain string, explicit bool) (bool, error) {
	switch value := item.Value.(type) {
	case *parser.ConstFetch:
		if value.Name == "false" {
			return true, nil
		}
	case *parser.Array:
		for _, sub := range value.Items {
			if err := t.extractItem(sub, domain, explicit); err != nil {
				return true, err
			}
		}
		return true, nil
	}
	return false, nil
}

// choiceRule extracts choice labels, inverting key and value according to
// the configured policy. Non-array choice values (closures, iterators)
// cannot be read statically and are skipped.
func (t *traversal) choiceRule(options *parser.Array, item *parser.ArrayItem, domain string, explicit bool) error {
	choices, ok := item.Value.(*parser.Array)
	if !ok {
		return nil
	}
	choicesAsValues := false
	for _, sibling := range options.Items {
		key, ok := sibling.Key.(*parser.String)
		if !ok || key.Value != "choices_as_values" {
			continue
		}
		if value, ok := sibling.Value.(*parser.ConstFetch); ok {
			choicesAsValues = value.Name == "true"
		}
	}
	invert := t.ex.policy == ChoicesAlwaysInvert || choicesAsValues

	for _, choice := range choices.Items {
		c := choice
		if invert {
			c = invertItem(c)
		}
		if group, ok := c.Key.(*parser.Array); ok {
			// grouped choices: the key holds the nested list and the
			// value is the group label
			for _, nested := range group.Items {
				n := nested
				if invert {
					n = invertItem(n)
				}
				if err := t.extractItem(n, domain, explicit); err != nil {
					return err
				}
			}
		}
		if err := t.extractItem(c, domain, explicit); err != nil {
			return err
		}
	}
	return nil
}

// invertItem returns a new item with key and value swapped. The shared tree
// is never touched.
func invertItem(item *parser.ArrayItem) *parser.ArrayItem {
	return &parser.ArrayItem{Key: item.Value, Value: item.Key}
}

// constraintsRule extracts the message option of constraint constructors,
// always into the validators domain.
func (t *traversal) constraintsRule(item *parser.ArrayItem) error {
	constraints, ok := item.Value.(*parser.Array)
	if !ok {
		return nil
	}
	for _, constraint := range constraints.Items {
		args, ok := callArgs(constraint.Value)
		if !ok || len(args) == 0 {
			continue
		}
		options, ok := args[0].(*parser.Array)
		if !ok {
			continue
		}
		for _, opt := range options.Items {
			key, ok := opt.Key.(*parser.String)
			if !ok || key.Value != "message" {
				continue
			}
			if err := t.extractItem(opt, "validators", true); err != nil {
				return err
			}
		}
	}
	return nil
}

// attrRule extracts placeholder and title attributes, unwrapping
// array-merging helper calls around the attribute map.
func (t *traversal) attrRule(value parser.Node, domain string, explicit bool) error {
	if args, ok := callArgs(value); ok && len(args) > 0 {
		for _, arg := range args {
			if err := t.attrRule(arg, domain, explicit); err != nil {
				return err
			}
		}
		return nil
	}
	attrs, ok := value.(*parser.Array)
	if !ok {
		return nil
	}
	for _, item := range attrs.Items {
		key, ok := item.Key.(*parser.String)
		if !ok {
			continue
		}
		if key.Value == "placeholder" || key.Value == "title" {
			if err := t.extractItem(item, domain, explicit); err != nil {
				return err
			}
		}
	}
	return nil
}

// customKeyRule extracts caller-declared keys: array values yield one
// candidate per string item, everything else goes through the generic path.
func (t *traversal) customKeyRule(item *parser.ArrayItem, domain string, explicit bool) error {
	if arr, ok := item.Value.(*parser.Array); ok {
		for _, sub := range arr.Items {
			if _, ok := sub.Value.(*parser.String); ok {
				if err := t.extractItem(sub, domain, explicit); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return t.extractItem(item, domain, explicit)
}

// callArgs returns the argument list of any call-like node.
func callArgs(n parser.Node) ([]parser.Node, bool) {
	switch v := n.(type) {
	case *parser.New:
		return v.Args, true
	case *parser.FuncCall:
		return v.Args, true
	case *parser.MethodCall:
		return v.Args, true
	}
	return nil, false
}

// extractItem turns one option item into at most one catalogue message. An
// explicit domain finalizes immediately; otherwise the message waits for
// the class default domain.
func (t *traversal) extractItem(item *parser.ArrayItem, domain string, explicit bool) error {
	value := item.Value
	if value == nil {
		return nil
	}

	doc := ""
	if item.Key != nil {
		doc = item.Key.DocComment()
	}
	if doc == "" {
		doc = value.DocComment()
	}

	ignore := false
	desc, meaning := "", ""
	var alternates []docblock.AltTrans
	if doc != "" {
		where := fmt.Sprintf("file %s near line %d", value.Pos().File, value.Pos().Line)
		for _, directive := range t.ex.resolver.Resolve(doc, where) {
			switch d := directive.(type) {
			case docblock.Ignore:
				ignore = true
			case docblock.Desc:
				desc = d.Text
			case docblock.Meaning:
				meaning = d.Text
			case docblock.AltTrans:
				alternates = append(alternates, d)
			}
		}
	}

	str, isString := value.(*parser.String)
	num, isNumber := value.(*parser.Number)

	// a literal "false" is an opt-out, e.g. for disabled labels
	ignore = ignore || !isString || str.Value == "false"

	if !isString && !isNumber {
		if ignore {
			return nil
		}
		pos := value.Pos()
		message := fmt.Sprintf(
			"unable to extract translation id for form label/title/placeholder from non-string values, but got %q in %s on line %d; refactor the code to use a string, or add /** @Ignore */ to skip it",
			parser.KindName(value), pos.File, pos.Line)
		if t.ex.logger != nil {
			t.ex.logger.Error(message)
			return nil
		}
		return errors.New(message)
	}

	id := ""
	if isNumber {
		id = num.Value
	} else {
		id = str.Value
	}

	m := translation.NewMessage(id, "", translation.SourceRef{
		File: value.Pos().File,
		Line: value.Pos().Line,
	})
	m.Desc = desc
	m.Meaning = meaning
	for _, alt := range alternates {
		// last hint per locale wins
		m.SetAltTrans(alt.Locale, alt.Text)
	}

	if explicit {
		m.Domain = domain
		t.cat.Add(m)
		return nil
	}
	if scope := t.currentScope(); scope != nil {
		scope.pending = append(scope.pending, m)
		return nil
	}
	// no enclosing class to defer to
	t.cat.Add(m)
	return nil
}
