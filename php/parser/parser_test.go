package parser

import (
	"strings"
	"testing"
)

func parseOne(t *testing.T, src string) Node {
	t.Helper()
	nodes := Parse([]byte(src), "test.php")
	if len(nodes) != 1 {
		t.Fatalf("expected 1 root node, got %d:\n%s", len(nodes), sprintAll(nodes))
	}
	return nodes[0]
}

func sprintAll(nodes []Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(Sprint(n))
	}
	return sb.String()
}

func TestParseAddCall(t *testing.T) {
	node := parseOne(t, `<?php $builder->add('name', TextType::class, ['label' => 'Full name']);`)

	call, ok := node.(*MethodCall)
	if !ok {
		t.Fatalf("expected MethodCall, got %s", KindName(node))
	}
	if call.Name != "add" {
		t.Errorf("expected add, got %q", call.Name)
	}
	if _, ok := call.Receiver.(*Variable); !ok {
		t.Errorf("expected Variable receiver, got %s", KindName(call.Receiver))
	}
	if len(call.Args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(call.Args))
	}
	if s, ok := call.Args[0].(*String); !ok || s.Value != "name" {
		t.Errorf("arg 0: expected string name, got %s", KindName(call.Args[0]))
	}
	if c, ok := call.Args[1].(*ConstFetch); !ok || c.Name != "TextType::class" {
		t.Errorf("arg 1: expected TextType::class, got %s", KindName(call.Args[1]))
	}
	arr, ok := call.Args[2].(*Array)
	if !ok {
		t.Fatalf("arg 2: expected Array, got %s", KindName(call.Args[2]))
	}
	if len(arr.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(arr.Items))
	}
	key, ok := arr.Items[0].Key.(*String)
	if !ok || key.Value != "label" {
		t.Errorf("expected label key, got %s", KindName(arr.Items[0].Key))
	}
	value, ok := arr.Items[0].Value.(*String)
	if !ok || value.Value != "Full name" {
		t.Errorf("expected Full name value, got %s", KindName(arr.Items[0].Value))
	}
}

func TestParseClassBody(t *testing.T) {
	src := `<?php
namespace App\Form;

use Symfony\Component\Form\AbstractType;

class RegistrationType extends AbstractType
{
    public function buildForm(FormBuilderInterface $builder, array $options)
    {
        $builder->add('email', null, ['label' => 'Email address']);
    }

    public function configureOptions(OptionsResolver $resolver)
    {
        $resolver->setDefaults(['translation_domain' => 'account']);
    }
}`
	node := parseOne(t, src)
	cls, ok := node.(*Class)
	if !ok {
		t.Fatalf("expected Class, got %s", KindName(node))
	}
	if cls.Name != "RegistrationType" {
		t.Errorf("expected RegistrationType, got %q", cls.Name)
	}
	if len(cls.Body) != 2 {
		t.Fatalf("expected 2 body statements, got %d:\n%s", len(cls.Body), Sprint(cls))
	}
	for i, stmt := range cls.Body {
		if _, ok := stmt.(*MethodCall); !ok {
			t.Errorf("body %d: expected MethodCall, got %s", i, KindName(stmt))
		}
	}
}

func TestParseArrayFunctionForm(t *testing.T) {
	node := parseOne(t, `<?php array('empty_value' => false, 'choices' => array('Yes' => 1));`)
	arr, ok := node.(*Array)
	if !ok {
		t.Fatalf("expected Array, got %s", KindName(node))
	}
	if len(arr.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(arr.Items))
	}
	if c, ok := arr.Items[0].Value.(*ConstFetch); !ok || c.Name != "false" {
		t.Errorf("expected false const, got %s", KindName(arr.Items[0].Value))
	}
	nested, ok := arr.Items[1].Value.(*Array)
	if !ok {
		t.Fatalf("expected nested Array, got %s", KindName(arr.Items[1].Value))
	}
	if n, ok := nested.Items[0].Value.(*Number); !ok || n.Value != "1" {
		t.Errorf("expected number 1, got %s", KindName(nested.Items[0].Value))
	}
}

func TestParseNewWithOptions(t *testing.T) {
	node := parseOne(t, `<?php ['constraints' => [new NotBlank(['message' => 'Required'])]];`)
	arr := node.(*Array)
	list := arr.Items[0].Value.(*Array)
	constraint, ok := list.Items[0].Value.(*New)
	if !ok {
		t.Fatalf("expected New, got %s", KindName(list.Items[0].Value))
	}
	if constraint.Class != "NotBlank" {
		t.Errorf("expected NotBlank, got %q", constraint.Class)
	}
	if len(constraint.Args) != 1 {
		t.Fatalf("expected 1 arg, got %d", len(constraint.Args))
	}
	if _, ok := constraint.Args[0].(*Array); !ok {
		t.Errorf("expected Array arg, got %s", KindName(constraint.Args[0]))
	}
}

func TestParseDocCommentOnValue(t *testing.T) {
	node := parseOne(t, `<?php ['label' => /** @Desc("The full name") */ 'Full name'];`)
	arr := node.(*Array)
	value := arr.Items[0].Value
	if !strings.Contains(value.DocComment(), `@Desc("The full name")`) {
		t.Errorf("expected doc comment on value, got %q", value.DocComment())
	}
	if arr.Items[0].Key.DocComment() != "" {
		t.Errorf("expected no doc comment on key, got %q", arr.Items[0].Key.DocComment())
	}
}

func TestParseDocCommentOnKey(t *testing.T) {
	node := parseOne(t, `<?php [/** @Ignore */ 'label' => $computed];`)
	arr := node.(*Array)
	if !strings.Contains(arr.Items[0].Key.DocComment(), "@Ignore") {
		t.Errorf("expected doc comment on key, got %q", arr.Items[0].Key.DocComment())
	}
}

func TestParseChainedCalls(t *testing.T) {
	node := parseOne(t, `<?php $resolver->setRequired(['name'])->setDefaults(['translation_domain' => 'account']);`)
	outer, ok := node.(*MethodCall)
	if !ok {
		t.Fatalf("expected MethodCall, got %s", KindName(node))
	}
	if outer.Name != "setDefaults" {
		t.Errorf("expected setDefaults, got %q", outer.Name)
	}
	inner, ok := outer.Receiver.(*MethodCall)
	if !ok {
		t.Fatalf("expected MethodCall receiver, got %s", KindName(outer.Receiver))
	}
	if inner.Name != "setRequired" {
		t.Errorf("expected setRequired, got %q", inner.Name)
	}
	if _, ok := inner.Receiver.(*Variable); !ok {
		t.Errorf("expected Variable at chain bottom, got %s", KindName(inner.Receiver))
	}
}

func TestParseAssignAndPropFetch(t *testing.T) {
	node := parseOne(t, `<?php $form = $this->factory->create();`)
	assign, ok := node.(*Assign)
	if !ok {
		t.Fatalf("expected Assign, got %s", KindName(node))
	}
	call, ok := assign.Value.(*MethodCall)
	if !ok {
		t.Fatalf("expected MethodCall value, got %s", KindName(assign.Value))
	}
	if _, ok := call.Receiver.(*PropFetch); !ok {
		t.Errorf("expected PropFetch receiver, got %s", KindName(call.Receiver))
	}
}

func TestParseRecoversFromUnparseableStatement(t *testing.T) {
	src := `<?php
yield from $weird ??= <<<EOT
nonsense
EOT;
$builder->add('name', null, ['label' => 'Name']);`
	nodes := Parse([]byte(src), "test.php")
	found := false
	for _, n := range nodes {
		if call, ok := n.(*MethodCall); ok && call.Name == "add" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the add call to survive recovery:\n%s", sprintAll(nodes))
	}
}

func TestParseClosureBodyVisible(t *testing.T) {
	node := parseOne(t, `<?php ['choice_loader' => function () { return ['label' => 'Inner']; }];`)
	arr := node.(*Array)
	closure, ok := arr.Items[0].Value.(*FuncCall)
	if !ok {
		t.Fatalf("expected FuncCall closure, got %s", KindName(arr.Items[0].Value))
	}
	if len(closure.Args) == 0 {
		t.Fatal("expected closure statements to be retained")
	}
}

func TestParseLineNumbers(t *testing.T) {
	src := "<?php\n\n['label' =>\n    'Full name'];"
	node := parseOne(t, src)
	arr := node.(*Array)
	if arr.Pos().Line != 3 {
		t.Errorf("expected array on line 3, got %d", arr.Pos().Line)
	}
	if arr.Items[0].Value.Pos().Line != 4 {
		t.Errorf("expected value on line 4, got %d", arr.Items[0].Value.Pos().Line)
	}
}

func TestDecodeString(t *testing.T) {
	cases := []struct {
		raw      string
		expected string
	}{
		{`'plain'`, "plain"},
		{`'it\'s'`, "it's"},
		{`'a\\b'`, `a\b`},
		{`'no\nescape'`, `no\nescape`},
		{`"tab\tend"`, "tab\tend"},
		{`"quote\""`, `quote"`},
		{`"dollar\$x"`, "dollar$x"},
		{`"keep\q"`, `keep\q`},
	}
	for _, tc := range cases {
		if got := decodeString(tc.raw); got != tc.expected {
			t.Errorf("decodeString(%s): expected %q, got %q", tc.raw, tc.expected, got)
		}
	}
}
