package audio

import "github.com/gopxl/beep/v2"

// fade 对定长流的首尾施加线性增益斜坡
type fade struct {
	s       beep.Streamer
	fadeIn  int // 淡入样本数
	fadeOut int // 淡出样本数
	length  int // 流的总样本数
	pos     int
}

func newFade(s beep.Streamer, fadeIn, fadeOut, length int) beep.Streamer {
	if fadeIn <= 0 && fadeOut <= 0 {
		return s
	}
	return &fade{s: s, fadeIn: fadeIn, fadeOut: fadeOut, length: length}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.s.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		p := f.pos + i
		if f.fadeIn > 0 && p < f.fadeIn {
			gain = float64(p) / float64(f.fadeIn)
		}
		if f.fadeOut > 0 && p >= f.length-f.fadeOut {
			g := float64(f.length-p) / float64(f.fadeOut)
			if g < 0 {
				g = 0
			}
			if g < gain {
				gain = g
			}
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
	}
	f.pos += n
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }
