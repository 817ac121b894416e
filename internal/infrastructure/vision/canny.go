//go:build !gocv
// +build !gocv

package vision

import "image"

const (
	tan22 = 0.4142135623730951
	tan67 = 2.414213562373095
)

const (
	cannyNone   uint8 = iota // не граница
	cannyWeak                // кандидат, прошёл нижний порог
	cannyStrong              // граница, прошёл верхний порог
)

func canny(gray *image.Gray, low, high float64) *image.Gray {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	at := func(x, y int) int {
		return int(gray.Pix[clampIndex(y, h)*gray.Stride+clampIndex(x, w)])
	}

	dx := make([]int, w*h)
	dy := make([]int, w*h)
	mag := make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx := (at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x-1, y) + at(x-1, y+1))
			gy := (at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x, y-1) + at(x+1, y-1))
			i := y*w + x
			dx[i], dy[i] = gx, gy
			mag[i] = abs(gx) + abs(gy)
		}
	}

	// за пределами изображения модуль градиента считается нулевым
	magAt := func(x, y int) int {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return mag[y*w+x]
	}

	state := make([]uint8, w*h)
	stack := make([]int, 0, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			m := mag[i]
			if float64(m) <= low {
				continue
			}

			xs, ys := float64(abs(dx[i])), float64(abs(dy[i]))
			var isMax bool
			switch {
			case ys < xs*tan22:
				isMax = m > magAt(x-1, y) && m >= magAt(x+1, y)
			case ys > xs*tan67:
				isMax = m > magAt(x, y-1) && m >= magAt(x, y+1)
			default:
				s := 1
				if (dx[i] < 0) != (dy[i] < 0) {
					s = -1
				}
				isMax = m > magAt(x-s, y-1) && m > magAt(x+s, y+1)
			}
			if !isMax {
				continue
			}

			if float64(m) > high {
				state[i] = cannyStrong
				stack = append(stack, i)
			} else {
				state[i] = cannyWeak
			}
		}
	}

	// гистерезис: слабые кандидаты, связанные с сильными, становятся границами
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for ny := y - 1; ny <= y+1; ny++ {
			for nx := x - 1; nx <= x+1; nx++ {
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				j := ny*w + nx
				if state[j] == cannyWeak {
					state[j] = cannyStrong
					stack = append(stack, j)
				}
			}
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for i, s := range state {
		if s == cannyStrong {
			out.Pix[(i/w)*out.Stride+i%w] = 255
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
