package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/cubespawn/diag"
	"github.com/plus3/cubespawn/ecs"
)

// PerformanceWindow shows the frame-rate diagnostics, storage counts and
// per-system timings.
type PerformanceWindow struct {
	scheduler *ecs.Scheduler

	historyFrames int
	fpsHistory    []float32
	frameIndex    int
	lastFrame     uint64
	plotBuffer    []float32
}

// NewPerformanceWindow creates a window plotting the last historyFrames FPS
// samples. scheduler may be nil, which hides the systems table.
func NewPerformanceWindow(scheduler *ecs.Scheduler, historyFrames int) *PerformanceWindow {
	return &PerformanceWindow{
		scheduler:     scheduler,
		historyFrames: historyFrames,
		fpsHistory:    make([]float32, historyFrames),
		plotBuffer:    make([]float32, historyFrames),
	}
}

// record appends the latest raw FPS sample, once per counted frame.
func (pw *PerformanceWindow) record(frameTime *diag.FrameTime) {
	if frameTime.FrameCount == pw.lastFrame {
		return
	}
	pw.lastFrame = frameTime.FrameCount

	fps, ok := frameTime.FPS.Value()
	if !ok {
		return
	}
	pw.fpsHistory[pw.frameIndex] = float32(fps)
	pw.frameIndex = (pw.frameIndex + 1) % pw.historyFrames
}

// samples returns the FPS history oldest first.
func (pw *PerformanceWindow) samples() []float32 {
	n := copy(pw.plotBuffer, pw.fpsHistory[pw.frameIndex:])
	copy(pw.plotBuffer[n:], pw.fpsHistory[:pw.frameIndex])
	return pw.plotBuffer
}

// Render draws the window for storage.
func (pw *PerformanceWindow) Render(storage *ecs.Storage) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 300), imgui.CondOnce)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	var frameTime *diag.FrameTime
	if storage.ReadSingleton(&frameTime) {
		pw.record(frameTime)
		pw.renderFrameTime(frameTime)
	}

	stats := storage.CollectStats()

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	if imgui.BeginTabBar("PerformanceTabs") {
		if imgui.BeginTabItem("FPS") {
			samples := pw.samples()
			if implot.BeginPlotV("FPS Over Time", imgui.NewVec2(-1, 160), 0) {
				implot.SetupAxesV("Frame", "FPS", 0, implot.AxisFlagsAutoFit)
				implot.PlotLineFloatPtrInt("FPS", &samples[0], int32(len(samples)))
				implot.EndPlot()
			}
			imgui.EndTabItem()
		}

		if imgui.BeginTabItem("Systems") {
			pw.renderSystems()
			imgui.EndTabItem()
		}

		if imgui.BeginTabItem("Storage") {
			renderStorageDetails(stats)
			imgui.EndTabItem()
		}
		imgui.EndTabBar()
	}

	imgui.End()
}

func (pw *PerformanceWindow) renderFrameTime(frameTime *diag.FrameTime) {
	imgui.Text(fmt.Sprintf("Frames: %d", frameTime.FrameCount))
	if v, ok := frameTime.FPS.Value(); ok {
		imgui.Text(fmt.Sprintf("FPS (raw): %.2f", v))
	}
	if v, ok := frameTime.FPS.Average(); ok {
		imgui.Text(fmt.Sprintf("FPS (SMA): %.2f", v))
	}
	if v, ok := frameTime.FPS.Smoothed(); ok {
		imgui.Text(fmt.Sprintf("FPS (EMA): %.2f", v))
	}
	if v, ok := frameTime.FrameTime.Average(); ok {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms", v))
	}
}

func (pw *PerformanceWindow) renderSystems() {
	if pw.scheduler == nil {
		imgui.Text("No scheduler")
		return
	}

	stats := pw.scheduler.Stats()
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Last")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, sys := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(sys.LastDuration.String())
			imgui.TableNextColumn()
			imgui.Text(sys.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(sys.MaxDuration.String())
		}

		imgui.EndTable()
	}
}

func renderStorageDetails(stats *ecs.StorageStats) {
	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%v", arch.ComponentTypes))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}
}
