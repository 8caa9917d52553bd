package xorcipher

import "testing"

func TestXOR(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		key  []byte
		want []byte
	}{
		{
			name: "single byte key",
			data: []byte{'h', 'e', 'l', 'l', 'o'},
			key:  []byte{0x01},
			want: []byte{'h' ^ 1, 'e' ^ 1, 'l' ^ 1, 'l' ^ 1, 'o' ^ 1},
		},
		{
			name: "repeating multi byte key",
			data: []byte{'h', 'e', 'l', 'l', 'o'},
			key:  []byte{0x01, 0x02},
			want: []byte{'h' ^ 1, 'e' ^ 2, 'l' ^ 1, 'l' ^ 2, 'o' ^ 1},
		},
		{
			name: "empty key returns data unchanged",
			data: []byte{0x12, 0x34},
			key:  nil,
			want: []byte{0x12, 0x34},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := XOR(tt.data, tt.key)
			if len(got) != len(tt.want) {
				t.Fatalf("length = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("out[%d] = 0x%02X, want 0x%02X", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestXOR_RoundTrip(t *testing.T) {
	original := []byte("hello, script")
	key := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	encrypted := XOR(original, key)
	decrypted := XOR(encrypted, key)

	if string(decrypted) != string(original) {
		t.Errorf("round trip = %q, want %q", decrypted, original)
	}
}
