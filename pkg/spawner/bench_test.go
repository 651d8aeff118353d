package spawner

import (
	"testing"

	"github.com/ChicagoDave/citycore/pkg/grid"
	"github.com/ChicagoDave/citycore/pkg/zone"
)

// checkerZones zones every cell of a size x size square, alternating the
// type per 8x8 block.
func checkerZones(size int) map[grid.Key]zone.Type {
	zoned := make(map[grid.Key]zone.Type, size*size)
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			t := zone.Residential
			if (x/8+y/8)%2 == 1 {
				t = zone.Commercial
			}
			zoned[grid.C(x, y).Key()] = t
		}
	}
	return zoned
}

func benchmarkClusters(b *testing.B, size int) {
	zoned := checkerZones(size)
	none := func(grid.Key) bool { return false }
	b.ResetTimer()
	var n int
	for i := 0; i < b.N; i++ {
		n = len(Clusters(zoned, none))
	}
	b.ReportMetric(float64(n), "clusters")
}

func BenchmarkClusters64(b *testing.B)  { benchmarkClusters(b, 64) }
func BenchmarkClusters256(b *testing.B) { benchmarkClusters(b, 256) }
