package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andreyvolosyuk/cassandra-fake/internal/cassandra"
)

func TestScalar(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		value any
		typ   cassandra.Type
		want  any
	}{
		"timestamp from epoch millis": {
			value: int64(1700000000000),
			typ:   cassandra.TypeTimestamp,
			want:  time.UnixMilli(1700000000000).UTC(),
		},
		"timestamp from float millis": {
			value: float64(1700000000000),
			typ:   cassandra.TypeTimestamp,
			want:  time.UnixMilli(1700000000000).UTC(),
		},
		"timestamp from narrow int millis": {
			value: int32(500000),
			typ:   cassandra.TypeTimestamp,
			want:  time.UnixMilli(500000).UTC(),
		},
		"timestamp from narrow float millis": {
			value: float32(1024),
			typ:   cassandra.TypeTimestamp,
			want:  time.UnixMilli(1024).UTC(),
		},
		"date from offset day count": {
			value: int64(1)<<31 + 19700,
			typ:   cassandra.TypeDate,
			want:  time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 19700),
		},
		"date before the epoch": {
			value: int64(1)<<31 - 1,
			typ:   cassandra.TypeDate,
			want:  time.Date(1969, time.December, 31, 0, 0, 0, 0, time.UTC),
		},
		"text is identity": {
			value: "ann",
			typ:   cassandra.TypeText,
			want:  "ann",
		},
		"non-numeric timestamp passes through": {
			value: "not-a-number",
			typ:   cassandra.TypeTimestamp,
			want:  "not-a-number",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			req := require.New(t)

			req.Equal(tc.want, Scalar(tc.value, tc.typ))
		})
	}
}

func TestValue(t *testing.T) {
	t.Parallel()

	t.Run("nil stays nil", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		req.Nil(Value(nil, cassandra.Column{Kind: cassandra.KindScalar, Type: cassandra.TypeTimestamp}))
	})

	t.Run("empty containers pass through unchanged", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		req.Equal(cassandra.List{}, Value(cassandra.List{}, cassandra.Column{
			Kind: cassandra.KindList, Type: cassandra.TypeTimestamp,
		}))
		req.Equal(cassandra.Set{}, Value(cassandra.Set{}, cassandra.Column{
			Kind: cassandra.KindSet, Type: cassandra.TypeDate,
		}))
		req.Equal(cassandra.Map{}, Value(cassandra.Map{}, cassandra.Column{
			Kind: cassandra.KindMap, KeyType: cassandra.TypeText, Type: cassandra.TypeInt,
		}))
	})

	t.Run("list is normalized element-wise", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		got := Value(cassandra.List{int64(0), int64(1700000000000)}, cassandra.Column{
			Kind: cassandra.KindList, Type: cassandra.TypeTimestamp,
		})
		req.Equal(cassandra.List{
			time.UnixMilli(0).UTC(),
			time.UnixMilli(1700000000000).UTC(),
		}, got)
	})

	t.Run("set is normalized element-wise", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		got := Value(cassandra.NewSet(int64(1)<<31), cassandra.Column{
			Kind: cassandra.KindSet, Type: cassandra.TypeDate,
		})
		req.Equal(cassandra.NewSet(time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)), got)
	})

	t.Run("map normalizes keys and values by their own types", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		got := Value(cassandra.Map{"seen": int64(1700000000000)}, cassandra.Column{
			Kind: cassandra.KindMap, KeyType: cassandra.TypeText, Type: cassandra.TypeTimestamp,
		})
		req.Equal(cassandra.Map{"seen": time.UnixMilli(1700000000000).UTC()}, got)
	})

	t.Run("scalar columns defer to the type tag", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		req.Equal(1.7, Value(1.7, cassandra.Column{Kind: cassandra.KindScalar, Type: cassandra.TypeDouble}))
	})
}
