package scene

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// cornerSegments 每个圆角的折线段数
const cornerSegments = 4

// maxBatchVertices 单次 DrawTriangles 的顶点上限（uint16 索引）
const maxBatchVertices = math.MaxUint16

// renderer 批量构建顶点并通过 DrawTriangles 绘制
// 所有控件都是纯色填充，共用一张 1x1 白色纹理，颜色通过顶点颜色传递
type renderer struct {
	white    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
	outline  [][2]float64

	// submit 提交一个批次，为 nil 时直接 DrawTriangles 到屏幕
	submit func(screen *ebiten.Image, vertices []ebiten.Vertex, indices []uint16, src *ebiten.Image)
}

// Draw 绘制所有顶层控件
// 屏幕原点对应主显示器左上角。
func (s *Stage) Draw(screen *ebiten.Image) {
	if len(s.chrome) == 0 {
		return
	}

	monitor := s.PrimaryMonitor()
	var origin ebiten.GeoM
	origin.Translate(-monitor.X, -monitor.Y)

	r := &s.renderer
	r.begin()
	for _, id := range s.chrome {
		s.drawNode(screen, id, origin, 1.0)
	}
	r.flush(screen)
}

func (s *Stage) drawNode(screen *ebiten.Image, id WidgetID, parent ebiten.GeoM, parentAlpha float64) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}

	alpha := parentAlpha * float64(n.opacity) / 255.0
	if alpha <= 0 {
		return
	}

	geo := nodeGeoM(n)
	geo.Concat(parent)

	if n.style.Fill.A > 0 && n.width > 0 && n.height > 0 {
		s.renderer.appendRoundedRect(screen, geo, n.width, n.height, n.style.CornerRadius, n.style.Fill, alpha)
	}

	for _, child := range n.children {
		s.drawNode(screen, child, geo, alpha)
	}
}

// nodeGeoM 计算控件本地坐标到父坐标的变换
// 旋转围绕支点进行，因此原地旋转不会平移控件
func nodeGeoM(n *node) ebiten.GeoM {
	px := n.pivotX * n.width
	py := n.pivotY * n.height

	var g ebiten.GeoM
	g.Translate(-px, -py)
	g.Rotate(n.rotation * math.Pi / 180.0)
	g.Translate(px+n.x, py+n.y)
	return g
}

// roundedRectOutline 生成圆角矩形的轮廓（本地坐标，顺时针）
// 结果追加到 dst 并返回；半径被限制在短边的一半以内
func roundedRectOutline(dst [][2]float64, w, h, radius float64) [][2]float64 {
	dst = dst[:0]
	radius = math.Min(radius, math.Min(w, h)/2)
	if radius <= 0 {
		return append(dst, [2]float64{0, 0}, [2]float64{w, 0}, [2]float64{w, h}, [2]float64{0, h})
	}

	corners := [4]struct {
		cx, cy float64
		start  float64
	}{
		{radius, radius, math.Pi},           // 左上
		{w - radius, radius, 1.5 * math.Pi}, // 右上
		{w - radius, h - radius, 0},         // 右下
		{radius, h - radius, 0.5 * math.Pi}, // 左下
	}
	for _, c := range corners {
		for i := 0; i <= cornerSegments; i++ {
			a := c.start + float64(i)/cornerSegments*(math.Pi/2)
			dst = append(dst, [2]float64{c.cx + radius*math.Cos(a), c.cy + radius*math.Sin(a)})
		}
	}
	return dst
}

func (r *renderer) begin() {
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
}

// appendRoundedRect 把一个变换后的圆角矩形加入批次（三角扇）
func (r *renderer) appendRoundedRect(screen *ebiten.Image, geo ebiten.GeoM, w, h, radius float64, fill color.RGBA, alpha float64) {
	r.outline = roundedRectOutline(r.outline, w, h, radius)
	if len(r.vertices)+len(r.outline) > maxBatchVertices {
		r.flush(screen)
	}

	cr := float32(fill.R) / 255
	cg := float32(fill.G) / 255
	cb := float32(fill.B) / 255
	ca := float32(float64(fill.A) / 255 * alpha)

	base := uint16(len(r.vertices))
	for _, p := range r.outline {
		x, y := geo.Apply(p[0], p[1])
		r.vertices = append(r.vertices, ebiten.Vertex{
			DstX:   float32(x),
			DstY:   float32(y),
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	for i := 1; i < len(r.outline)-1; i++ {
		r.indices = append(r.indices, base, base+uint16(i), base+uint16(i+1))
	}
}

func (r *renderer) flush(screen *ebiten.Image) {
	if len(r.indices) == 0 {
		return
	}
	if r.submit != nil {
		r.submit(screen, r.vertices, r.indices, r.white)
	} else {
		op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
		screen.DrawTriangles(r.vertices, r.indices, r.white, op)
	}
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
}
