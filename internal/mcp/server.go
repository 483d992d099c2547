package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"horario/internal/schedule"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server with tools for schedule operations.
// Agent clients carry no session cookie, so all tools operate on one
// dedicated agent schedule created at startup.
func NewServer(svc *schedule.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"Horario",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Tool: add_activity - Append one validated activity
	s.AddTool(
		mcp.NewTool("add_activity",
			mcp.WithDescription("Add a weekly recurring activity to the schedule. The activity must end strictly after it starts."),
			mcp.WithString("day",
				mcp.Required(),
				mcp.Description("Weekday name, one of: Lunes, Martes, Miércoles, Jueves, Viernes, Sábado, Domingo"),
			),
			mcp.WithString("start",
				mcp.Required(),
				mcp.Description("Start time as zero-padded 24-hour HH:MM (e.g. '09:00')"),
			),
			mcp.WithString("end",
				mcp.Required(),
				mcp.Description("End time as HH:MM, strictly after start"),
			),
			mcp.WithString("title",
				mcp.Description("Display title (default: 'Clase/Evento')"),
			),
			mcp.WithString("location",
				mcp.Description("Optional location shown under the title"),
			),
			mcp.WithString("note",
				mcp.Description("Optional free-text note (markdown)"),
			),
		),
		handleAddActivity(svc),
	)

	// Tool: list_activities - Current schedule in insertion order
	s.AddTool(
		mcp.NewTool("list_activities",
			mcp.WithDescription("List all activities currently in the schedule, in insertion order."),
		),
		handleListActivities(svc),
	)

	// Tool: get_grid - Derived weekly grid
	s.AddTool(
		mcp.NewTool("get_grid",
			mcp.WithDescription("Render the weekly grid: hourly rows, day columns, and the activity chips overlapping each cell."),
			mcp.WithNumber("start_hour",
				mcp.Description("First displayed hour, clamped to [5,12] (default: 7)"),
			),
			mcp.WithNumber("end_hour",
				mcp.Description("Hour the display stops at (exclusive), clamped to [13,23] (default: 21)"),
			),
		),
		handleGetGrid(svc),
	)

	// Tool: clear_schedule - Empty the schedule unconditionally
	s.AddTool(
		mcp.NewTool("clear_schedule",
			mcp.WithDescription("Remove every activity from the schedule. Cannot be undone."),
		),
		handleClearSchedule(svc),
	)

	// Tool: export_schedule - horario.json document
	s.AddTool(
		mcp.NewTool("export_schedule",
			mcp.WithDescription("Export the schedule as the horario.json document. The output can be fed back through the import endpoint to reconstruct the schedule exactly."),
		),
		handleExportSchedule(svc),
	)

	return s
}

func handleAddActivity(svc *schedule.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		day, err := req.RequireString("day")
		if err != nil {
			return mcp.NewToolResultError("day is required"), nil
		}
		start, err := req.RequireString("start")
		if err != nil {
			return mcp.NewToolResultError("start is required"), nil
		}
		end, err := req.RequireString("end")
		if err != nil {
			return mcp.NewToolResultError("end is required"), nil
		}

		// Same default the form's title field ships with.
		title := req.GetString("title", "Clase/Evento")

		activity, err := svc.Add(schedule.AddInput{
			Day:      day,
			Title:    title,
			Start:    start,
			End:      end,
			Location: req.GetString("location", ""),
			Note:     req.GetString("note", ""),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to add activity: %v", err)), nil
		}

		data, _ := json.MarshalIndent(activity, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func handleListActivities(svc *schedule.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, _ := json.MarshalIndent(svc.List(), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func handleGetGrid(svc *schedule.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		startHour := clamp(req.GetInt("start_hour", 7), schedule.MinStartHour, schedule.MaxStartHour)
		endHour := clamp(req.GetInt("end_hour", 21), schedule.MinEndHour, schedule.MaxEndHour)

		data, _ := json.MarshalIndent(svc.Grid(startHour, endHour), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func handleClearSchedule(svc *schedule.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		svc.Clear()
		return mcp.NewToolResultText("schedule cleared"), nil
	}
}

func handleExportSchedule(svc *schedule.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, err := svc.Export()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to export schedule: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
