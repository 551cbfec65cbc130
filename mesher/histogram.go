package mesher

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// PeakInfo is a local maximum found in a Histogram1D. Peaks are ranked by Support;
// SelectTopPeaks orders them strongest first.
type PeakInfo struct {
	Bin     int
	Value   float64 // bin-center value
	Support float64 // smoothed count at Bin
}

// PeakInfo2D is a local maximum found in a Histogram2D.
type PeakInfo2D struct {
	BinX, BinY int
	XValue     float64 // theta bin center
	YValue     float64 // distance bin center
	Support    float64
}

// Histogram1D accumulates scalar samples into fixed bins over [Min, Max).
type Histogram1D struct {
	bins     int
	min, max float64
	counts   []float64
}

// NewHistogram1D constructs a 1D histogram with the given bin count and range.
func NewHistogram1D(bins int, min, max float64) *Histogram1D {
	return &Histogram1D{bins: bins, min: min, max: max, counts: make([]float64, bins)}
}

// Calculate rebuilds the histogram's counts from samples, discarding any prior state.
func (h *Histogram1D) Calculate(samples []float64) {
	for i := range h.counts {
		h.counts[i] = 0
	}
	width := (h.max - h.min) / float64(h.bins)
	for _, s := range samples {
		if s < h.min || s >= h.max || width <= 0 {
			continue
		}
		bin := int((s - h.min) / width)
		if bin >= h.bins {
			bin = h.bins - 1
		}
		h.counts[bin]++
	}
}

// binCenter returns the value at the center of bin i.
func (h *Histogram1D) binCenter(i int) float64 {
	width := (h.max - h.min) / float64(h.bins)
	return h.min + width*(float64(i)+0.5)
}

// gaussianKernel1D builds a normalized, odd-length discrete Gaussian kernel. kernelSize must be
// odd and >= 1.
func gaussianKernel1D(kernelSize int) []float64 {
	if kernelSize < 1 || kernelSize%2 == 0 {
		panic(errors.Errorf("mesher: gaussian kernel size must be odd and >= 1, got %d", kernelSize))
	}
	if kernelSize == 1 {
		return []float64{1}
	}
	sigma := float64(kernelSize) / 6.0
	if sigma <= 0 {
		sigma = 1
	}
	half := kernelSize / 2
	kernel := make([]float64, kernelSize)
	sum := 0.0
	for i := -half; i <= half; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+half] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

func smooth1D(counts []float64, kernel []float64) []float64 {
	half := len(kernel) / 2
	out := make([]float64, len(counts))
	for i := range counts {
		var acc float64
		for k, kv := range kernel {
			j := i + k - half
			if j < 0 || j >= len(counts) {
				continue
			}
			acc += counts[j] * kv
		}
		out[i] = acc
	}
	return out
}

// LocalMaxima1D smooths the histogram with a Gaussian of kernelSize, then finds local maxima,
// comparing each bin with the `window` bins on either side of it (a neighborhood of
// 2*window+1 bins; ties with a neighbor still count as a maximum), keeping only peaks whose
// smoothed value is at least peakFraction*max and whose raw support is >= minSupport.
func (h *Histogram1D) LocalMaxima1D(kernelSize, window int, peakFraction, minSupport float64) []PeakInfo {
	if window < 1 {
		window = 1
	}
	smoothed := smooth1D(h.counts, gaussianKernel1D(kernelSize))

	var maxVal float64
	for _, v := range smoothed {
		if v > maxVal {
			maxVal = v
		}
	}

	var peaks []PeakInfo
	for i := range smoothed {
		isMax := true
		for j := i - window; j <= i+window; j++ {
			if j < 0 || j >= len(smoothed) || j == i {
				continue
			}
			if smoothed[j] > smoothed[i] {
				isMax = false
				break
			}
		}
		if !isMax {
			continue
		}
		if maxVal > 0 && smoothed[i] < peakFraction*maxVal {
			continue
		}
		if h.counts[i] < minSupport {
			continue
		}
		peaks = append(peaks, PeakInfo{Bin: i, Value: h.binCenter(i), Support: smoothed[i]})
	}
	return peaks
}

// DedupeAdjacentPeaks drops every peak whose Value equals that of the peak kept just before it,
// so only the first peak of each run of equal Values remains.
func DedupeAdjacentPeaks(peaks []PeakInfo) []PeakInfo {
	if len(peaks) == 0 {
		return peaks
	}
	out := peaks[:1]
	for i := 1; i < len(peaks); i++ {
		if peaks[i].Value == out[len(out)-1].Value {
			continue
		}
		out = append(out, peaks[i])
	}
	return out
}

// CollapseNearbyPeaks merges peaks whose Value differs by less than minSeparation, keeping the
// one with greater Support. A negative minSeparation disables collapsing entirely.
func CollapseNearbyPeaks(peaks []PeakInfo, minSeparation float64) []PeakInfo {
	if minSeparation < 0 {
		return peaks
	}
	kept := make([]bool, len(peaks))
	for i := range peaks {
		kept[i] = true
	}
	for i := 0; i < len(peaks); i++ {
		if !kept[i] {
			continue
		}
		for j := i + 1; j < len(peaks); j++ {
			if !kept[j] {
				continue
			}
			if math.Abs(peaks[i].Value-peaks[j].Value) >= minSeparation {
				continue
			}
			if peaks[i].Support >= peaks[j].Support {
				kept[j] = false
			} else {
				kept[i] = false
				break
			}
		}
	}
	out := make([]PeakInfo, 0, len(peaks))
	for i, p := range peaks {
		if kept[i] {
			out = append(out, p)
		}
	}
	return out
}

// SelectTopPeaks iteratively picks up to maxPeaks peaks by greatest support, removing each
// chosen peak from consideration after selection.
func SelectTopPeaks(peaks []PeakInfo, maxPeaks int) []PeakInfo {
	sorted := append([]PeakInfo(nil), peaks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Support > sorted[j].Support })
	if maxPeaks >= 0 && len(sorted) > maxPeaks {
		sorted = sorted[:maxPeaks]
	}
	return sorted
}

// Histogram2D accumulates (x, y) sample pairs into a fixed 2D bin grid.
type Histogram2D struct {
	binsX, binsY int
	minX, maxX   float64
	minY, maxY   float64
	counts       [][]float64
}

// NewHistogram2D constructs a 2D histogram over [[minX,maxX], [minY,maxY]] with binsX x binsY
// bins.
func NewHistogram2D(binsX, binsY int, minX, maxX, minY, maxY float64) *Histogram2D {
	counts := make([][]float64, binsX)
	for i := range counts {
		counts[i] = make([]float64, binsY)
	}
	return &Histogram2D{binsX: binsX, binsY: binsY, minX: minX, maxX: maxX, minY: minY, maxY: maxY, counts: counts}
}

// Calculate rebuilds the histogram's counts from (x, y) sample pairs, discarding prior state.
func (h *Histogram2D) Calculate(xs, ys []float64) {
	for i := range h.counts {
		for j := range h.counts[i] {
			h.counts[i][j] = 0
		}
	}
	widthX := (h.maxX - h.minX) / float64(h.binsX)
	widthY := (h.maxY - h.minY) / float64(h.binsY)
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	for i := 0; i < n; i++ {
		x, y := xs[i], ys[i]
		if x < h.minX || x >= h.maxX || y < h.minY || y >= h.maxY || widthX <= 0 || widthY <= 0 {
			continue
		}
		bx := int((x - h.minX) / widthX)
		by := int((y - h.minY) / widthY)
		if bx >= h.binsX {
			bx = h.binsX - 1
		}
		if by >= h.binsY {
			by = h.binsY - 1
		}
		h.counts[bx][by]++
	}
}

func (h *Histogram2D) binCenterX(i int) float64 {
	width := (h.maxX - h.minX) / float64(h.binsX)
	return h.minX + width*(float64(i)+0.5)
}

func (h *Histogram2D) binCenterY(j int) float64 {
	width := (h.maxY - h.minY) / float64(h.binsY)
	return h.minY + width*(float64(j)+0.5)
}

func smooth2D(counts [][]float64, kernel []float64) [][]float64 {
	half := len(kernel) / 2
	nx, ny := len(counts), 0
	if nx > 0 {
		ny = len(counts[0])
	}
	out := make([][]float64, nx)
	for i := range out {
		out[i] = make([]float64, ny)
	}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			var acc float64
			for ki, kvi := range kernel {
				ii := i + ki - half
				if ii < 0 || ii >= nx {
					continue
				}
				for kj, kvj := range kernel {
					jj := j + kj - half
					if jj < 0 || jj >= ny {
						continue
					}
					acc += counts[ii][jj] * kvi * kvj
				}
			}
			out[i][j] = acc
		}
	}
	return out
}

// LocalMaxima2D Gaussian-blurs the histogram with a square odd kernel, then selects up to k
// peaks by strict inequality over a local neighborhood, requiring raw support >= minSupport and
// a mutual-exclusion radius of minDistanceBetweenMaxima bins between any two selected peaks.
func (h *Histogram2D) LocalMaxima2D(kernelSize, k int, minSupport, minDistanceBetweenMaxima float64) []PeakInfo2D {
	smoothed := smooth2D(h.counts, gaussianKernel1D(kernelSize))

	var candidates []PeakInfo2D
	for i := 0; i < h.binsX; i++ {
		for j := 0; j < h.binsY; j++ {
			if h.counts[i][j] < minSupport {
				continue
			}
			isMax := true
			for di := -1; di <= 1 && isMax; di++ {
				for dj := -1; dj <= 1; dj++ {
					if di == 0 && dj == 0 {
						continue
					}
					ii, jj := i+di, j+dj
					if ii < 0 || ii >= h.binsX || jj < 0 || jj >= h.binsY {
						continue
					}
					if smoothed[ii][jj] >= smoothed[i][j] {
						isMax = false
						break
					}
				}
			}
			if !isMax {
				continue
			}
			candidates = append(candidates, PeakInfo2D{
				BinX: i, BinY: j,
				XValue: h.binCenterX(i), YValue: h.binCenterY(j),
				Support: smoothed[i][j],
			})
		}
	}

	sort.Slice(candidates, func(a, b int) bool { return candidates[a].Support > candidates[b].Support })

	var selected []PeakInfo2D
	for _, c := range candidates {
		if k >= 0 && len(selected) >= k {
			break
		}
		tooClose := false
		for _, s := range selected {
			dist := math.Hypot(float64(c.BinX-s.BinX), float64(c.BinY-s.BinY))
			if dist < minDistanceBetweenMaxima {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		selected = append(selected, c)
	}
	return selected
}
