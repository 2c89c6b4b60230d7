// ==============================================================================================
// FILE: exec/exec_test.go
// ==============================================================================================
// PURPOSE: Exercises the executor's statement and expression semantics end to end, going
//          through the assembler so instructions carry real scope ids rather than hand-built
//          fixtures.
// ==============================================================================================

package exec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zen/assembler"
)

// run assembles src and executes it, returning captured stdout. stdin feeds girdi reads.
func run(t *testing.T, src, stdin string) (string, error) {
	t.Helper()
	asm := assembler.New("<test>", true, nil)
	require.NoError(t, asm.AssembleSource(src))

	var out bytes.Buffer
	ex := New(asm.Manager(), "<test>", &out, strings.NewReader(stdin), 1, nil)
	err := ex.Run()
	return out.String(), err
}

func TestPrintJoinsArgsWithSpace(t *testing.T) {
	out, err := run(t, `yazdır "a", 1, doğru`, "")
	require.NoError(t, err)
	assert.Equal(t, "a 1 true\n", out)
}

func TestTypePrintsValueAndTag(t *testing.T) {
	out, err := run(t, `tip 5`, "")
	require.NoError(t, err)
	assert.Equal(t, "5 (sayı)\n", out)
}

func TestAssignSetAndCompoundForms(t *testing.T) {
	out, err := run(t, "x = 10\nx += 5\nx -= 2\nx *= 2\nx /= 2\nyazdır x", "")
	require.NoError(t, err)
	assert.Equal(t, "13\n", out)
}

func TestCompoundAssignToUndefinedNameErrors(t *testing.T) {
	_, err := run(t, "x += 1", "")
	require.Error(t, err)
}

func TestRepeatRunsBodyExactCountTimes(t *testing.T) {
	out, err := run(t, "toplam = 0\n3 defa tekrarla\n\ttoplam += 1\nyazdır toplam", "")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestRepeatBreakStopsEarly(t *testing.T) {
	out, err := run(t, "toplam = 0\n5 defa tekrarla\n\ttoplam += 1\n\teğer toplam == 2 ise\n\t\tdurdur\nyazdır toplam", "")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestRepeatContinueSkipsRestOfIteration(t *testing.T) {
	src := "toplam = 0\n" +
		"3 defa tekrarla\n" +
		"\ttoplam += 1\n" +
		"\teğer toplam == 102 ise\n" +
		"\t\tdevam et\n" +
		"\ttoplam += 100\n" +
		"yazdır toplam"
	out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, "203\n", out)
}

func TestWhileTrueWithBreak(t *testing.T) {
	src := "i = 0\n" +
		"sürekli tekrarla\n" +
		"\ti += 1\n" +
		"\teğer i == 4 ise\n" +
		"\t\tdurdur\n" +
		"yazdır i"
	out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)
}

func TestForRangeIsHalfOpenWithDefaultStep(t *testing.T) {
	src := "toplam = 0\n0 ile 5 aralığında : i\n\ttoplam += i\nyazdır toplam"
	out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, "10\n", out) // 0+1+2+3+4
}

func TestForRangeWithExplicitStep(t *testing.T) {
	src := "toplam = 0\n0 ile 10 aralığında 3 artarak : i\n\ttoplam += i\nyazdır toplam"
	out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, "18\n", out) // 0+3+6+9
}

func TestForRangeZeroStepGuardedToOne(t *testing.T) {
	src := "sayac = 0\n0 ile 3 aralığında 0 artarak : i\n\tsayac += 1\nyazdır sayac"
	out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestForInOverText(t *testing.T) {
	src := `kelime = "ab"` + "\n" + `harfler = ""` + "\n" + `kelime içinde dolan : c` + "\n\tharfler += c\nyazdır harfler"
	out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, "ab\n", out)
}

func TestForInOverArray(t *testing.T) {
	src := "liste = [1, 2, 3]\ntoplam = 0\nliste içinde dolan : e\n\ttoplam += e\nyazdır toplam"
	out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, "6\n", out)
}

func TestIfChainPicksFirstTruthyBranch(t *testing.T) {
	src := "x = 2\n" +
		"eğer x == 1 ise\n" +
		"\tyazdır \"bir\"\n" +
		"değilse ve x == 2 ise\n" +
		"\tyazdır \"iki\"\n" +
		"değilse\n" +
		"\tyazdır \"diğer\""
	out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, "iki\n", out)
}

func TestIfChainFallsThroughToElse(t *testing.T) {
	src := "x = 9\n" +
		"eğer x == 1 ise\n" +
		"\tyazdır \"bir\"\n" +
		"değilse\n" +
		"\tyazdır \"diğer\""
	out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, "diğer\n", out)
}

func TestFunctionDeclDefaultEvaluatedOnce(t *testing.T) {
	src := "fonksiyon selamla(isim: metin = \"dünya\")\n" +
		"\tyazdır isim\n" +
		"selamla()\n" +
		"selamla(\"ali\")"
	out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, "dünya\nali\n", out)
}

func TestFunctionWithoutReturnYieldsNull(t *testing.T) {
	src := "fonksiyon sessiz()\n" +
		"\tx = 1\n" +
		"y = sessiz()\n" +
		"tip y"
	out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, "boş (boş)\n", out)
}

func TestFunctionReturnValue(t *testing.T) {
	src := "fonksiyon topla(a, b)\n\tdöndür a + b\nyazdır topla(2, 3)"
	out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}

func TestFunctionArityErrorOnMissingRequiredArg(t *testing.T) {
	src := "fonksiyon topla(a, b)\n\tdöndür a + b\nyazdır topla(2)"
	_, err := run(t, src, "")
	require.Error(t, err)
}

func TestFunctionArityErrorOnTooManyArgs(t *testing.T) {
	src := "fonksiyon topla(a, b)\n\tdöndür a + b\nyazdır topla(1, 2, 3)"
	_, err := run(t, src, "")
	require.Error(t, err)
}

func TestFunctionDeclaredTypeMismatchErrors(t *testing.T) {
	src := "fonksiyon kare(a: sayı)\n\tdöndür a * a\nyazdır kare(\"x\")"
	_, err := run(t, src, "")
	require.Error(t, err)
}

func TestFunctionNotFoundErrors(t *testing.T) {
	_, err := run(t, "yazdır yok()", "")
	require.Error(t, err)
}

func TestBinaryArithmeticAndComparison(t *testing.T) {
	out, err := run(t, `yazdır 1 + 2 * 3, 10 / 2, 10 % 3, 2 ^ 3, 1 < 2, 2 <= 2, 3 > 4, 3 >= 3, 1 == 1, 1 != 2`, "")
	require.NoError(t, err)
	assert.Equal(t, "7 5 1 8 true true false true true true\n", out)
}

func TestUnaryNegAndNot(t *testing.T) {
	out, err := run(t, `yazdır -5, !doğru`, "")
	require.NoError(t, err)
	assert.Equal(t, "-5 false\n", out)
}

func TestIndexIntoArrayAndNegativeWraparound(t *testing.T) {
	out, err := run(t, `liste = [10, 20, 30]` + "\n" + `yazdır liste[0], liste[-1]`, "")
	require.NoError(t, err)
	assert.Equal(t, "10 30\n", out)
}

func TestIndexOutOfBoundsYieldsFalseNotError(t *testing.T) {
	out, err := run(t, `liste = [1, 2]`+"\n"+`yazdır liste[5]`, "")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestIndexOnNonIndexableYieldsFalse(t *testing.T) {
	out, err := run(t, `x = 5`+"\n"+`yazdır x[0]`, "")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestInputWithoutCoercionReturnsTrimmedText(t *testing.T) {
	out, err := run(t, `x = girdi "isim: "` + "\n" + `yazdır x`, "ali\n")
	require.NoError(t, err)
	assert.Equal(t, "isim: ali\n", out)
}

func TestInputWithNumberCoercion(t *testing.T) {
	out, err := run(t, `x = girdi "yaş: " sayı` + "\n" + `yazdır x`, "42\n")
	require.NoError(t, err)
	assert.Equal(t, "yaş: 42\n", out)
}

func TestInputWithBooleanCoercion(t *testing.T) {
	out, err := run(t, `x = girdi "emin misin: " mantıksal`+"\n"+`yazdır x`, "evet\n")
	require.NoError(t, err)
	assert.Equal(t, "emin misin: true\n", out)
}

func TestRandomNumberWithinSpan(t *testing.T) {
	src := `x = rastgele sayı 1 ile 1 arasında` + "\n" + `yazdır x`
	out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestRandomLetterProducesSingleRune(t *testing.T) {
	src := `x = rastgele harf` + "\n" + `tip x`
	out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Contains(t, out, "(metin)")
}

func TestRandomBooleanZeroChanceAlwaysFalse(t *testing.T) {
	src := `x = rastgele mantıksal 0` + "\n" + `yazdır x`
	out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestRandomBooleanFullChanceAlwaysTrue(t *testing.T) {
	src := `x = rastgele mantıksal 100` + "\n" + `yazdır x`
	out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestBreakOutsideLoopErrorsAtTopLevel(t *testing.T) {
	_, err := run(t, "durdur", "")
	require.Error(t, err)
}

func TestDivisionByZeroYieldsInfNotError(t *testing.T) {
	out, err := run(t, `yazdır 1 / 0`, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Inf")
}

func TestModuloByZeroErrors(t *testing.T) {
	_, err := run(t, `yazdır 1 % 0`, "")
	require.Error(t, err)
}
