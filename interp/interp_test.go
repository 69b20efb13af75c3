package interp

import (
	"context"
	"testing"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/stretchr/testify/require"

	"github.com/a11yscan/engine/actionir"
	"github.com/a11yscan/engine/transform"
)

func parseToIR(t *testing.T, src string) *actionir.Action {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	tree, err := parser.ParseCtx(nil, nil, []byte(src))
	require.NoError(t, err)
	tr := transform.New("app.js", []byte(src))
	actionTree, warnings := tr.Transform(tree.RootNode())
	require.Empty(t, warnings)
	return actionTree.Root
}

func run(t *testing.T, src string, opts ...Option) (Outcome, *Interpreter, error) {
	t.Helper()
	program := parseToIR(t, src)
	it := New(opts...)
	out, err := it.Eval(context.Background(), program)
	return out, it, err
}

func TestEvalArithmeticAndComparison(t *testing.T) {
	out, _, err := run(t, `var x = 2 + 3 * 4; x >= 14;`)
	require.NoError(t, err)
	require.Equal(t, KindBool, out.Value.Kind)
	require.True(t, out.Value.B)
}

func TestEvalStringConcatenationAndTemplate(t *testing.T) {
	out, _, err := run(t, "var name = 'world'; `hello ${name}!`;")
	require.NoError(t, err)
	require.Equal(t, "hello world!", out.Value.S)
}

func TestEvalFunctionCallAndReturn(t *testing.T) {
	out, _, err := run(t, `
		function add(a, b) { return a + b; }
		add(3, 4);
	`)
	require.NoError(t, err)
	require.Equal(t, float64(7), out.Value.N)
}

func TestEvalClosureCapturesEnclosingScope(t *testing.T) {
	out, _, err := run(t, `
		function makeCounter() {
			var count = 0;
			return function() {
				count = count + 1;
				return count;
			};
		}
		var counter = makeCounter();
		counter();
		counter();
		counter();
	`)
	require.NoError(t, err)
	require.Equal(t, float64(3), out.Value.N)
}

func TestEvalForLoopAccumulates(t *testing.T) {
	out, _, err := run(t, `
		var sum = 0;
		for (var i = 0; i < 5; i = i + 1) {
			sum = sum + i;
		}
		sum;
	`)
	require.NoError(t, err)
	require.Equal(t, float64(10), out.Value.N)
}

func TestEvalBreakAndContinue(t *testing.T) {
	out, _, err := run(t, `
		var sum = 0;
		for (var i = 0; i < 10; i = i + 1) {
			if (i === 5) { break; }
			if (i % 2 === 0) { continue; }
			sum = sum + i;
		}
		sum;
	`)
	require.NoError(t, err)
	require.Equal(t, float64(4), out.Value.N)
}

func TestEvalTryCatchCatchesThrowFromNestedCall(t *testing.T) {
	out, _, err := run(t, `
		function explode() { throw "boom"; }
		var result = "";
		try {
			explode();
			result = "unreachable";
		} catch (e) {
			result = "caught:" + e;
		}
		result;
	`)
	require.NoError(t, err)
	require.Equal(t, "caught:boom", out.Value.S)
}

func TestEvalTryFinallyAlwaysRuns(t *testing.T) {
	out, _, err := run(t, `
		var log = "";
		try {
			log = log + "try";
			throw "x";
		} catch (e) {
			log = log + ",catch";
		} finally {
			log = log + ",finally";
		}
		log;
	`)
	require.NoError(t, err)
	require.Equal(t, "try,catch,finally", out.Value.S)
}

func TestEvalUnhandledThrowSurfacesAsError(t *testing.T) {
	_, _, err := run(t, `throw "unrecoverable";`)
	require.Error(t, err)
}

func TestEvalArrayMapFilterForEach(t *testing.T) {
	out, _, err := run(t, `
		var nums = [1, 2, 3, 4, 5];
		var doubled = nums.map(function(n) { return n * 2; });
		var evens = doubled.filter(function(n) { return n % 4 === 0; });
		evens.join(",");
	`)
	require.NoError(t, err)
	require.Equal(t, "4,8", out.Value.S)
}

func TestEvalConsoleCapturesOutputDeterministically(t *testing.T) {
	src := `console.log("hello", 42); console.warn("careful");`
	_, it1, err := run(t, src)
	require.NoError(t, err)
	_, it2, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, []string{"hello 42", "[warn] careful"}, it1.ConsoleOutput())
	require.Equal(t, it1.ConsoleOutput(), it2.ConsoleOutput())
}

func TestEvalClassConstructorAndMethod(t *testing.T) {
	out, _, err := run(t, `
		class Box {
			constructor(value) {
				this.value = value;
			}
			double() {
				return this.value * 2;
			}
		}
		var b = new Box(21);
		b.double();
	`)
	require.NoError(t, err)
	require.Equal(t, float64(42), out.Value.N)
}

func TestMaxIterationsCapStopsRunawayLoop(t *testing.T) {
	_, _, err := run(t, `while (true) {}`, WithMaxIterations(50))
	require.ErrorIs(t, err, ErrMaxIterations)
}

func TestMaxCallDepthCapStopsUnboundedRecursion(t *testing.T) {
	_, _, err := run(t, `
		function recurse(n) { return recurse(n + 1); }
		recurse(0);
	`, WithMaxCallDepth(20))
	require.ErrorIs(t, err, ErrMaxCallDepth)
}

func TestCancelledContextStopsEvaluation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	program := parseToIR(t, `for (var i = 0; i < 1000000; i = i + 1) {}`)
	it := New()
	_, err := it.Eval(ctx, program)
	require.ErrorIs(t, err, ErrCancelled)
}

func TestDOMSimulationGetElementByIdIsStableWithinOneEval(t *testing.T) {
	out, _, err := run(t, `
		var a = document.getElementById('menu');
		var b = document.getElementById('menu');
		a === b;
	`, WithDOMSimulation(true))
	require.NoError(t, err)
	require.True(t, out.Value.B)
}

func TestDOMSimulationSetAttributeAndClassListRoundTrip(t *testing.T) {
	out, _, err := run(t, `
		var el = document.createElement('button');
		el.setAttribute('aria-expanded', 'false');
		el.classList.add('open');
		el.classList.contains('open') && el.getAttribute('aria-expanded') === 'false';
	`, WithDOMSimulation(true))
	require.NoError(t, err)
	require.True(t, out.Value.B)
}

func TestSetTimeoutRunsCallbackSynchronously(t *testing.T) {
	out, _, err := run(t, `
		var ran = false;
		setTimeout(function() { ran = true; }, 1000);
		ran;
	`, WithDOMSimulation(true))
	require.NoError(t, err)
	require.True(t, out.Value.B)
}

func TestJSONStringifyAndParseRoundTrip(t *testing.T) {
	out, _, err := run(t, `
		var obj = { a: 1, b: "two", c: [1, 2, 3] };
		var text = JSON.stringify(obj);
		var parsed = JSON.parse(text);
		parsed.b + "-" + parsed.c.join("+");
	`)
	require.NoError(t, err)
	require.Equal(t, "two-1+2+3", out.Value.S)
}

func TestUnknownGlobalReferenceYieldsUndefinedWithoutAborting(t *testing.T) {
	out, it, err := run(t, `typeof someUndeclaredGlobal;`)
	require.NoError(t, err)
	require.Equal(t, "undefined", out.Value.S)
	require.Empty(t, it.Warnings())
}

func TestRunningSameProgramTwiceIsIdempotent(t *testing.T) {
	src := `
		var acc = [];
		for (var i = 0; i < 3; i = i + 1) { acc.push(i * i); }
		acc.join(",");
	`
	out1, _, err1 := run(t, src)
	out2, _, err2 := run(t, src)
	require.NoError(t, err1)
	require.NoError(t, err2)
	require.Equal(t, out1.Value.S, out2.Value.S)
}

func TestEvalDoesNotBlockLongerThanSafetyCapsAllow(t *testing.T) {
	start := time.Now()
	_, _, err := run(t, `while (true) {}`, WithMaxIterations(1000))
	require.ErrorIs(t, err, ErrMaxIterations)
	require.Less(t, time.Since(start), 5*time.Second)
}
