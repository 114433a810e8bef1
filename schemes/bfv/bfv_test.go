package bfv_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/bfvengine/core/rlwe"
	"github.com/tuneinsight/bfvengine/schemes/bfv"
)

// testPlaintextModuli is the small table of plaintext moduli every
// TestXxx/ below runs against, alongside LogN/QBits.
var testPlaintextModuli = []uint64{65537, 40961}

// testParams returns the default single parameter set used by tests
// that only need one fixture.
func testParams(t *testing.T) rlwe.Parameters {
	t.Helper()
	params, err := rlwe.NewParametersFromLiteral(rlwe.ParametersLiteral{
		LogN:               12,
		PlaintextModulus:   65537,
		QBits:              50,
		RequireNTTFriendly: true,
	})
	require.NoError(t, err)
	return params
}

// testParamSets returns one Parameters per entry in testPlaintextModuli,
// the table TestXxx/ subtests below run against.
func testParamSets(t *testing.T) []rlwe.Parameters {
	t.Helper()
	out := make([]rlwe.Parameters, 0, len(testPlaintextModuli))
	for _, pm := range testPlaintextModuli {
		params, err := rlwe.NewParametersFromLiteral(rlwe.ParametersLiteral{
			LogN:               12,
			PlaintextModulus:   pm,
			QBits:              50,
			RequireNTTFriendly: true,
		})
		require.NoError(t, err)
		out = append(out, params)
	}
	return out
}

// GetTestName builds the subtest name every table-driven test below
// passes to t.Run, in the "Op/param=value/..." convention.
func GetTestName(opname string, params rlwe.Parameters) string {
	return fmt.Sprintf("%s/LogN=%d/logQ=%d/t=%d", opname, params.LogN(), params.Q().BitLen(), params.T().Uint64())
}

// testContext wires up keys, encoder, encryptor, decryptor and
// evaluator for a fixed seed, the order every scenario test below
// builds on.
type testContext struct {
	params    rlwe.Parameters
	sk        *rlwe.SecretKey
	encoder   *bfv.Encoder
	encryptor *bfv.Encryptor
	decryptor *bfv.Decryptor
	evaluator *bfv.Evaluator
}

func genTestContext(t *testing.T, params rlwe.Parameters, seed []byte) *testContext {
	t.Helper()

	kg, err := rlwe.NewSeededKeyGenerator(params, seed)
	require.NoError(t, err)

	sk, pk, err := kg.GenKeyPairNew()
	require.NoError(t, err)
	rlk, err := kg.GenRelinearizationKeyNew(sk)
	require.NoError(t, err)

	encryptor, err := bfv.NewSeededEncryptor(params, pk, seed)
	require.NoError(t, err)

	return &testContext{
		params:    params,
		sk:        sk,
		encoder:   bfv.NewEncoder(params),
		encryptor: encryptor,
		decryptor: bfv.NewDecryptor(params, sk),
		evaluator: bfv.NewEvaluator(params, rlk),
	}
}

func TestEncryptDecrypt(t *testing.T) {
	for _, params := range testParamSets(t) {
		params := params
		t.Run(GetTestName("EncryptDecrypt", params), func(t *testing.T) {
			tc := genTestContext(t, params, []byte("encrypt-decrypt"))

			pt := tc.encoder.Encode([]int64{42})
			ct, err := tc.encryptor.EncryptNew(pt)
			require.NoError(t, err)
			require.Equal(t, 2, ct.Size())

			got, err := tc.decryptor.DecryptNew(ct)
			require.NoError(t, err)
			require.Equal(t, int64(42), tc.encoder.DecodeScalar(got))
		})
	}
}

func TestAdd(t *testing.T) {
	for _, params := range testParamSets(t) {
		params := params
		t.Run(GetTestName("Add", params), func(t *testing.T) {
			tc := genTestContext(t, params, []byte("add"))

			a, err := tc.encryptor.EncryptNew(tc.encoder.Encode([]int64{100}))
			require.NoError(t, err)
			b, err := tc.encryptor.EncryptNew(tc.encoder.Encode([]int64{200}))
			require.NoError(t, err)

			sum, err := tc.evaluator.AddNew(a, b)
			require.NoError(t, err)

			pt, err := tc.decryptor.DecryptNew(sum)
			require.NoError(t, err)
			require.Equal(t, int64(300), tc.encoder.DecodeScalar(pt))
		})
	}
}

func TestSub(t *testing.T) {
	for _, params := range testParamSets(t) {
		params := params
		t.Run(GetTestName("Sub", params), func(t *testing.T) {
			tc := genTestContext(t, params, []byte("sub"))

			a, err := tc.encryptor.EncryptNew(tc.encoder.Encode([]int64{100}))
			require.NoError(t, err)
			b, err := tc.encryptor.EncryptNew(tc.encoder.Encode([]int64{200}))
			require.NoError(t, err)

			diff, err := tc.evaluator.SubNew(a, b)
			require.NoError(t, err)

			pt, err := tc.decryptor.DecryptNew(diff)
			require.NoError(t, err)
			require.Equal(t, int64(-100), tc.encoder.DecodeScalar(pt))
		})
	}
}

func TestMultiplyRelinearize(t *testing.T) {
	for _, params := range testParamSets(t) {
		params := params
		t.Run(GetTestName("MultiplyRelinearize", params), func(t *testing.T) {
			tc := genTestContext(t, params, []byte("multiply"))

			a, err := tc.encryptor.EncryptNew(tc.encoder.Encode([]int64{12}))
			require.NoError(t, err)
			b, err := tc.encryptor.EncryptNew(tc.encoder.Encode([]int64{8}))
			require.NoError(t, err)

			prod, err := tc.evaluator.MultiplyNew(a, b)
			require.NoError(t, err)
			require.Equal(t, 3, prod.Size())

			relin, err := tc.evaluator.RelinearizeNew(prod)
			require.NoError(t, err)
			require.Equal(t, 2, relin.Size())

			pt, err := tc.decryptor.DecryptNew(relin)
			require.NoError(t, err)
			require.Equal(t, int64(96), tc.encoder.DecodeScalar(pt))
		})
	}
}

// TestAddMultiplyCommutative checks add(a,b)==add(b,a) and
// multiply(a,b)==multiply(b,a) by decrypting both orderings and
// comparing the decoded plaintexts.
func TestAddMultiplyCommutative(t *testing.T) {
	for _, params := range testParamSets(t) {
		params := params
		t.Run(GetTestName("AddMultiplyCommutative", params), func(t *testing.T) {
			tc := genTestContext(t, params, []byte("commutative"))

			a, err := tc.encryptor.EncryptNew(tc.encoder.Encode([]int64{17}))
			require.NoError(t, err)
			b, err := tc.encryptor.EncryptNew(tc.encoder.Encode([]int64{9}))
			require.NoError(t, err)

			sumAB, err := tc.evaluator.AddNew(a, b)
			require.NoError(t, err)
			sumBA, err := tc.evaluator.AddNew(b, a)
			require.NoError(t, err)

			ptAB, err := tc.decryptor.DecryptNew(sumAB)
			require.NoError(t, err)
			ptBA, err := tc.decryptor.DecryptNew(sumBA)
			require.NoError(t, err)
			require.Equal(t, tc.encoder.DecodeScalar(ptAB), tc.encoder.DecodeScalar(ptBA))

			prodAB, err := tc.evaluator.MultiplyNew(a, b)
			require.NoError(t, err)
			prodBA, err := tc.evaluator.MultiplyNew(b, a)
			require.NoError(t, err)

			relinAB, err := tc.evaluator.RelinearizeNew(prodAB)
			require.NoError(t, err)
			relinBA, err := tc.evaluator.RelinearizeNew(prodBA)
			require.NoError(t, err)

			ptProdAB, err := tc.decryptor.DecryptNew(relinAB)
			require.NoError(t, err)
			ptProdBA, err := tc.decryptor.DecryptNew(relinBA)
			require.NoError(t, err)
			require.Equal(t, int64(153), tc.encoder.DecodeScalar(ptProdAB))
			require.Equal(t, tc.encoder.DecodeScalar(ptProdAB), tc.encoder.DecodeScalar(ptProdBA))
		})
	}
}

func TestDecryptSizeThreeRejected(t *testing.T) {
	for _, params := range testParamSets(t) {
		params := params
		t.Run(GetTestName("DecryptSizeThreeRejected", params), func(t *testing.T) {
			tc := genTestContext(t, params, []byte("size3"))

			a, err := tc.encryptor.EncryptNew(tc.encoder.Encode([]int64{3}))
			require.NoError(t, err)
			b, err := tc.encryptor.EncryptNew(tc.encoder.Encode([]int64{4}))
			require.NoError(t, err)

			prod, err := tc.evaluator.MultiplyNew(a, b)
			require.NoError(t, err)

			_, err = tc.decryptor.DecryptNew(prod)
			require.ErrorIs(t, err, bfv.ErrNotRelinearized)
		})
	}
}

func TestEncryptWithoutPublicKeyFails(t *testing.T) {
	params := testParams(t)
	enc, err := bfv.NewEncryptor(params, nil)
	require.NoError(t, err)

	_, err = enc.EncryptNew(bfv.NewPlaintext(params))
	require.Error(t, err)
	var keyErr *rlwe.KeyError
	require.ErrorAs(t, err, &keyErr)
}

func TestAddParameterMismatch(t *testing.T) {
	params1 := testParams(t)
	params2, err := rlwe.NewParametersFromLiteral(rlwe.ParametersLiteral{
		LogN:               11,
		PlaintextModulus:   65537,
		QBits:              40,
		RequireNTTFriendly: true,
	})
	require.NoError(t, err)

	tc1 := genTestContext(t, params1, []byte("mismatch-1"))
	tc2 := genTestContext(t, params2, []byte("mismatch-2"))

	a, err := tc1.encryptor.EncryptNew(tc1.encoder.Encode([]int64{1}))
	require.NoError(t, err)
	b, err := tc2.encryptor.EncryptNew(tc2.encoder.Encode([]int64{1}))
	require.NoError(t, err)

	_, err = tc1.evaluator.AddNew(a, b)
	require.Error(t, err)
	var mismatch *rlwe.ParameterMismatch
	require.ErrorAs(t, err, &mismatch)
}

func TestDecryptParameterMismatch(t *testing.T) {
	params1 := testParams(t)
	params2, err := rlwe.NewParametersFromLiteral(rlwe.ParametersLiteral{
		LogN:               11,
		PlaintextModulus:   65537,
		QBits:              40,
		RequireNTTFriendly: true,
	})
	require.NoError(t, err)

	tc1 := genTestContext(t, params1, []byte("decrypt-mismatch-1"))
	tc2 := genTestContext(t, params2, []byte("decrypt-mismatch-2"))

	ct, err := tc2.encryptor.EncryptNew(tc2.encoder.Encode([]int64{1}))
	require.NoError(t, err)

	_, err = tc1.decryptor.DecryptNew(ct)
	require.Error(t, err)
	var mismatch *rlwe.ParameterMismatch
	require.ErrorAs(t, err, &mismatch)
}

func TestCiphertextSerializationRoundTrip(t *testing.T) {
	for _, params := range testParamSets(t) {
		params := params
		t.Run(GetTestName("CiphertextSerializationRoundTrip", params), func(t *testing.T) {
			tc := genTestContext(t, params, []byte("serialize"))

			ct, err := tc.encryptor.EncryptNew(tc.encoder.Encode([]int64{77}))
			require.NoError(t, err)

			data, err := ct.MarshalBinary()
			require.NoError(t, err)

			var decoded bfv.Ciphertext
			require.NoError(t, decoded.UnmarshalBinary(data, params))

			pt, err := tc.decryptor.DecryptNew(&decoded)
			require.NoError(t, err)
			require.Equal(t, int64(77), tc.encoder.DecodeScalar(pt))
		})
	}
}
