package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"timeclock/internal/models"
	"timeclock/pkg/utils"
)

func (h *Handler) respondSummaryHTML(c *gin.Context, report *models.Report) {
	c.Header("Content-Type", "text/html; charset=utf-8")

	var html string

	if session, err := h.repo.GetOpenSession(); err == nil && session != nil {
		elapsed := int64(time.Since(session.StartedAt).Seconds())
		html += fmt.Sprintf(`<div class="session-banner">Clocked in since %s (%s)</div>`,
			session.StartedAt.Format("15:04"), utils.FormatClock(elapsed))
	}

	if len(report.Projects) == 0 {
		html += `<div class="loading">No sessions recorded</div>`
		c.String(http.StatusOK, html)
		return
	}

	html += `<div class="listing">`
	for _, project := range report.Projects {
		timeStr := utils.FormatRoundedUnit(project.TotalSeconds)

		percentStr := fmt.Sprintf("%.1f%%", project.Percentage)
		if project.Percentage < 10 {
			percentStr = "&nbsp;&nbsp;" + percentStr
		} else if project.Percentage < 100 {
			percentStr = "&nbsp;" + percentStr
		}

		html += fmt.Sprintf(`
		<div class="project-item" style="--bar-width: %.1f%%">
			<span class="project-name">%s</span>
			<div>
				<span class="project-time">%s (%d sessions)</span>
				<span class="project-percentage">%s</span>
			</div>
		</div>`, project.Percentage, project.ProjectName, timeStr, project.SessionCount, percentStr)
	}
	html += `</div>`

	html += fmt.Sprintf(`<div class="total">Total: %s</div>`, utils.FormatRoundedUnit(report.TotalSeconds))

	c.String(http.StatusOK, html)
}

func (h *Handler) handleIndex(c *gin.Context) {
	html := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Timeclock Dashboard</title>
    <script src="https://unpkg.com/htmx.org@1.9.10"></script>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        :root {
            --bg-primary: #f5f5f5;
            --bg-secondary: white;
            --text-primary: #333;
            --text-secondary: #1a1a1a;
            --text-muted: #7f8c8d;
            --border-color: #eee;
            --border-strong: #ecf0f1;
            --accent-color: #3498db;
            --heading-color: #2c3e50;
            --shadow: rgba(0,0,0,0.1);
        }

        [data-theme="dark"] {
            --bg-primary: #1a1a1a;
            --bg-secondary: #2d2d2d;
            --text-primary: #e0e0e0;
            --text-secondary: #ffffff;
            --text-muted: #a0a0a0;
            --border-color: #404040;
            --border-strong: #4a4a4a;
            --accent-color: #5dade2;
            --heading-color: #5dade2;
            --shadow: rgba(0,0,0,0.3);
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: var(--bg-primary);
            padding: 20px;
            color: var(--text-primary);
            transition: background-color 0.3s ease, color 0.3s ease;
        }

        .header {
            display: flex;
            justify-content: space-between;
            align-items: center;
            margin-bottom: 30px;
        }

        h1 {
            color: var(--text-secondary);
            font-size: 2rem;
            margin: 0;
        }

        .header-btn {
            background: var(--bg-secondary);
            border: 2px solid var(--border-color);
            border-radius: 50px;
            padding: 8px 16px;
            cursor: pointer;
            font-size: 1.2rem;
            transition: all 0.3s ease;
        }

        .header-btn:hover {
            border-color: var(--accent-color);
            transform: scale(1.05);
        }

        .dashboard {
            display: flex;
            gap: 20px;
            flex-wrap: wrap;
        }

        .report-box {
            flex: 1;
            min-width: 300px;
            background: var(--bg-secondary);
            border-radius: 8px;
            box-shadow: 0 2px 4px var(--shadow);
            padding: 24px;
            transition: background-color 0.3s ease, box-shadow 0.3s ease;
        }

        .report-box h2 {
            font-size: 1.5rem;
            margin-bottom: 20px;
            color: var(--heading-color);
            border-bottom: 2px solid var(--accent-color);
            padding-bottom: 10px;
        }

        .session-banner {
            background: var(--accent-color);
            color: white;
            border-radius: 4px;
            padding: 8px 12px;
            margin-bottom: 12px;
            font-weight: 500;
        }

        .project-item {
            display: flex;
            justify-content: space-between;
            align-items: center;
            padding: 12px 8px;
            border-bottom: 1px solid var(--border-color);
            position: relative;
            border-radius: 4px;
        }

        .project-item::before {
            content: '';
            position: absolute;
            left: 0;
            top: 0;
            height: 100%;
            width: var(--bar-width, 0%);
            background: var(--accent-color);
            opacity: 0.2;
            border-radius: 4px;
            z-index: 0;
        }

        .project-item > * {
            position: relative;
            z-index: 1;
        }

        .project-item:last-child {
            border-bottom: none;
        }

        .project-name {
            font-weight: 500;
            color: var(--text-primary);
        }

        .project-time {
            color: var(--text-muted);
            font-size: 0.9rem;
        }

        .project-percentage {
            color: var(--accent-color);
            font-weight: 600;
            display: inline-block;
            min-width: 5em;
            text-align: right;
        }

        .loading {
            color: var(--text-muted);
            font-style: italic;
        }

        .total {
            margin-top: 20px;
            padding-top: 15px;
            border-top: 2px solid var(--border-strong);
            font-weight: 600;
            font-size: 1.1rem;
            color: var(--heading-color);
        }

        .listing {
            overflow-y: auto;
            overflow-x: hidden;
            max-height: calc(100vh - 320px);
        }

        @media (max-width: 1024px) {
            .dashboard {
                flex-direction: column;
            }

            .report-box {
                min-width: 100%;
            }
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Timeclock Dashboard</h1>
        <button class="header-btn" onclick="toggleTheme()" title="Toggle theme">
            <span id="theme-icon">&#127769;</span>
        </button>
    </div>
    <div class="dashboard">
        <div class="report-box">
            <h2>Today</h2>
            <div hx-get="/api/summary?period=day" hx-trigger="load, every 30s" hx-swap="innerHTML">
                <div class="loading">Loading...</div>
            </div>
        </div>

        <div class="report-box">
            <h2>This Week</h2>
            <div hx-get="/api/summary?period=week" hx-trigger="load, every 30s" hx-swap="innerHTML">
                <div class="loading">Loading...</div>
            </div>
        </div>

        <div class="report-box">
            <h2>This Month</h2>
            <div hx-get="/api/summary?period=month" hx-trigger="load, every 30s" hx-swap="innerHTML">
                <div class="loading">Loading...</div>
            </div>
        </div>
    </div>
    <script>
        function initTheme() {
            const savedTheme = localStorage.getItem('theme');
            const prefersDark = window.matchMedia('(prefers-color-scheme: dark)').matches;
            setTheme(savedTheme || (prefersDark ? 'dark' : 'light'));
        }

        function setTheme(theme) {
            document.documentElement.setAttribute('data-theme', theme);
            document.getElementById('theme-icon').innerHTML = theme === 'dark' ? '&#9728;&#65039;' : '&#127769;';
            localStorage.setItem('theme', theme);
        }

        function toggleTheme() {
            const current = document.documentElement.getAttribute('data-theme');
            setTheme(current === 'dark' ? 'light' : 'dark');
        }

        initTheme();
    </script>
</body>
</html>`

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
