package resp

import "testing"

func TestEncodeSimpleString(t *testing.T) {
	if got := string(Encode(SimpleString("OK"))); got != "+OK\r\n" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeSimpleError(t *testing.T) {
	if got := string(Encode(SimpleError("ERR boom"))); got != "-ERR boom\r\n" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeIntegerSign(t *testing.T) {
	cases := map[int64]string{
		0:    ":+0\r\n",
		42:   ":+42\r\n",
		-42:  ":-42\r\n",
		-1:   ":-1\r\n",
	}
	for n, want := range cases {
		if got := string(Encode(Integer(n))); got != want {
			t.Errorf("Integer(%d): got %q, want %q", n, got, want)
		}
	}
}

func TestEncodeIntegerMinInt64(t *testing.T) {
	const min = -9223372036854775808
	got := string(Encode(Integer(min)))
	want := ":-9223372036854775808\r\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeBulkString(t *testing.T) {
	if got := string(Encode(BulkStringFromString("hello"))); got != "$5\r\nhello\r\n" {
		t.Fatalf("got %q", got)
	}
	if got := string(Encode(BulkStringFromString(""))); got != "$0\r\n\r\n" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeNulls(t *testing.T) {
	if got := string(Encode(Null())); got != "_\r\n" {
		t.Fatalf("got %q", got)
	}
	if got := string(Encode(NullBulkString())); got != "$-1\r\n" {
		t.Fatalf("got %q", got)
	}
	if got := string(Encode(NullArray())); got != "*-1\r\n" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeBoolean(t *testing.T) {
	if got := string(Encode(Boolean(true))); got != "#t\r\n" {
		t.Fatalf("got %q", got)
	}
	if got := string(Encode(Boolean(false))); got != "#f\r\n" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeDoubleDecimalRange(t *testing.T) {
	cases := map[float64]string{
		0:        ",+0\r\n",
		3.14:     ",+3.14\r\n",
		-3.14:    ",-3.14\r\n",
		1:        ",+1\r\n",
		1e7:      ",+10000000\r\n",
	}
	for f, want := range cases {
		if got := string(Encode(Double(f))); got != want {
			t.Errorf("Double(%v): got %q, want %q", f, got, want)
		}
	}
}

func TestEncodeDoubleExponentialRange(t *testing.T) {
	if got := string(Encode(Double(1.23456e8))); got != ",+1.23456e8\r\n" {
		t.Fatalf("got %q", got)
	}
	if got := string(Encode(Double(-1.5e9))); got != ",-1.5e9\r\n" {
		t.Fatalf("got %q", got)
	}
	if got := string(Encode(Double(5e-9))); got != ",+5e-9\r\n" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeDoubleNonFinite(t *testing.T) {
	pos := 1.0
	neg := -1.0
	if got := string(Encode(Double(pos / 0))); got != ",+inf\r\n" {
		t.Fatalf("got %q", got)
	}
	if got := string(Encode(Double(neg / 0))); got != ",-inf\r\n" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeArrayPreservesOrder(t *testing.T) {
	f := ArrayOf(Integer(1), Integer(2), Integer(3))
	want := ":+1\r\n:+2\r\n:+3\r\n"
	got := string(Encode(f))
	if got != "*3\r\n"+want {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeSetPreservesOrder(t *testing.T) {
	f := SetOf(Integer(2), Integer(1))
	want := "~2\r\n:+2\r\n:+1\r\n"
	if got := string(Encode(f)); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// S6 — Map entries are always emitted in ascending key order, independent of
// construction order.
func TestEncodeMapSortsKeys(t *testing.T) {
	f := MapOf(
		MapEntry{Key: "b", Value: Integer(-2)},
		MapEntry{Key: "a", Value: Integer(1)},
	)
	want := "%2\r\n+a\r\n:+1\r\n+b\r\n:-2\r\n"
	if got := string(Encode(f)); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRoundTripProperty(t *testing.T) {
	frames := []Frame{
		SimpleString("OK"),
		SimpleError("ERR bad"),
		Integer(0),
		Integer(-9223372036854775808),
		BulkStringFromString("hello world"),
		BulkString([]byte{0, 1, 2, '\r', '\n'}),
		NullBulkString(),
		NullArray(),
		Null(),
		Boolean(true),
		Boolean(false),
		Double(3.14),
		Double(-1.23456e9),
		Double(5e-9),
		ArrayOf(Integer(1), BulkStringFromString("x"), ArrayOf(Integer(2))),
		SetOf(Integer(1), Integer(2)),
		MapOf(MapEntry{Key: "a", Value: Integer(1)}, MapEntry{Key: "z", Value: Boolean(true)}),
	}

	for _, f := range frames {
		wire := Encode(f)
		decoded, n, err := Decode(wire)
		if err != nil {
			t.Fatalf("frame %+v: decode(encode(f)) failed: %v", f, err)
		}
		if n != len(wire) {
			t.Fatalf("frame %+v: consumed %d of %d bytes", f, n, len(wire))
		}
		if !decoded.Equal(f) {
			t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, f)
		}
	}
}
