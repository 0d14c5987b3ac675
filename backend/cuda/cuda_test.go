package cuda

import "testing"

func TestComputeCapabilityString(t *testing.T) {
	cases := []struct {
		major, minor int32
		want         string
	}{
		{0, 0, ""},
		{7, 5, "7.5"},
		{8, 6, "8.6"},
	}
	for _, c := range cases {
		if got := computeCapabilityString(c.major, c.minor); got != c.want {
			t.Errorf("computeCapabilityString(%d,%d) = %q, want %q", c.major, c.minor, got, c.want)
		}
	}
}

func TestAPIVersionForCapability(t *testing.T) {
	cases := []struct {
		major int32
		want  string
	}{
		{6, "CUDA 9.0+"},
		{7, "CUDA 10.0+"},
		{8, "CUDA 11.0+"},
		{9, "CUDA 11.0+"},
	}
	for _, c := range cases {
		if got := apiVersionForCapability(c.major); got != c.want {
			t.Errorf("apiVersionForCapability(%d) = %q, want %q", c.major, got, c.want)
		}
	}
}

func TestItoa(t *testing.T) {
	cases := map[int32]string{0: "0", 7: "7", -3: "-3", 42: "42"}
	for in, want := range cases {
		if got := itoa(in); got != want {
			t.Errorf("itoa(%d) = %q, want %q", in, got, want)
		}
	}
}
