package classify

// defaultCategories is the built-in domain classification table. Keys are
// root domains without a www. prefix. Users can override any of these with
// custom rules, which are always checked first.
var defaultCategories = map[string]Category{
	// Version control & code hosting
	"github.com":    Productive,
	"gitlab.com":    Productive,
	"bitbucket.org": Productive,
	"sourcehut.org": Productive,
	"gitea.io":      Productive,

	// Developer Q&A & communities
	"stackoverflow.com":    Productive,
	"stackexchange.com":    Productive,
	"superuser.com":        Productive,
	"serverfault.com":      Productive,
	"askubuntu.com":        Productive,
	"dev.to":               Productive,
	"hashnode.com":         Productive,
	"news.ycombinator.com": Productive,
	"lobste.rs":            Productive,

	// Documentation & references
	"developer.mozilla.org": Productive,
	"mdn.mozilla.org":       Productive,
	"w3schools.com":         Productive,
	"devdocs.io":            Productive,
	"devhints.io":           Productive,
	"quickref.me":           Productive,
	"cheatography.com":      Productive,
	"tldr.sh":               Productive,
	"explainshell.com":      Productive,
	"regex101.com":          Productive,
	"regexr.com":            Productive,

	// Coding playgrounds
	"codepen.io":     Productive,
	"jsfiddle.net":   Productive,
	"codesandbox.io": Productive,
	"replit.com":     Productive,
	"stackblitz.com": Productive,
	"glitch.com":     Productive,

	// Project management & collaboration
	"notion.so":                Productive,
	"linear.app":               Productive,
	"jira.atlassian.com":       Productive,
	"confluence.atlassian.com": Productive,
	"trello.com":               Productive,
	"asana.com":                Productive,
	"monday.com":               Productive,
	"basecamp.com":             Productive,
	"clickup.com":              Productive,
	"airtable.com":             Productive,
	"coda.io":                  Productive,

	// Design & creative tools
	"figma.com":        Productive,
	"sketch.com":       Productive,
	"miro.com":         Productive,
	"whimsical.com":    Productive,
	"excalidraw.com":   Productive,
	"lucid.app":        Productive,
	"app.diagrams.net": Productive,

	// Communication (work-focused)
	"slack.com":           Productive,
	"zoom.us":             Productive,
	"meet.google.com":     Productive,
	"teams.microsoft.com": Productive,
	"webex.com":           Productive,
	"whereby.com":         Productive,

	// Cloud & DevOps
	"console.cloud.google.com": Productive,
	"aws.amazon.com":           Productive,
	"portal.azure.com":         Productive,
	"vercel.com":               Productive,
	"netlify.com":              Productive,
	"render.com":               Productive,
	"railway.app":              Productive,
	"fly.io":                   Productive,
	"heroku.com":               Productive,
	"docker.com":               Productive,
	"kubernetes.io":            Productive,
	"terraform.io":             Productive,
	"grafana.com":              Productive,
	"sentry.io":                Productive,
	"datadog.com":              Productive,
	"newrelic.com":             Productive,

	// API development
	"postman.com":   Productive,
	"insomnia.rest": Productive,
	"hoppscotch.io": Productive,

	// Productivity & notes
	"docs.google.com":   Productive,
	"drive.google.com":  Productive,
	"sheets.google.com": Productive,
	"slides.google.com": Productive,
	"office.com":        Productive,
	"word.live.com":     Productive,
	"excel.office.com":  Productive,

	// Learning platforms
	"coursera.org":        Productive,
	"udemy.com":           Productive,
	"edx.org":             Productive,
	"khanacademy.org":     Productive,
	"pluralsight.com":     Productive,
	"skillshare.com":      Productive,
	"frontendmasters.com": Productive,
	"egghead.io":          Productive,
	"laracasts.com":       Productive,
	"freecodecamp.org":    Productive,
	"theodinproject.com":  Productive,
	"roadmap.sh":          Productive,
	"brilliant.org":       Productive,
	"codecademy.com":      Productive,
	"boot.dev":            Productive,

	// Research & academic
	"arxiv.org":               Productive,
	"scholar.google.com":      Productive,
	"semanticscholar.org":     Productive,
	"researchgate.net":        Productive,
	"pubmed.ncbi.nlm.nih.gov": Productive,
	"jstor.org":               Productive,
	"acm.org":                 Productive,
	"ieeexplore.ieee.org":     Productive,

	// Coding challenges
	"leetcode.com":     Productive,
	"hackerrank.com":   Productive,
	"codewars.com":     Productive,
	"exercism.org":     Productive,
	"codeforces.com":   Productive,
	"topcoder.com":     Productive,
	"projecteuler.net": Productive,
	"atcoder.jp":       Productive,
	"interviewbit.com": Productive,

	// Package registries & tech references
	"npmjs.com":         Productive,
	"pypi.org":          Productive,
	"crates.io":         Productive,
	"packagist.org":     Productive,
	"pub.dev":           Productive,
	"nuget.org":         Productive,
	"mvnrepository.com": Productive,
	"bundlephobia.com":  Productive,

	// AI & ML tools (work)
	"chat.openai.com":       Productive,
	"claude.ai":             Productive,
	"anthropic.com":         Productive,
	"openai.com":            Productive,
	"huggingface.co":        Productive,
	"replicate.com":         Productive,
	"perplexity.ai":         Productive,
	"gemini.google.com":     Productive,
	"copilot.microsoft.com": Productive,

	// Tech blogs & learning
	"smashingmagazine.com": Productive,
	"css-tricks.com":       Productive,
	"web.dev":              Productive,
	"geeksforgeeks.org":    Productive,
	"baeldung.com":         Productive,
	"digitalocean.com":     Productive,
	"medium.com":           Productive,

	// Developer tools
	"jsonformatter.org":  Productive,
	"jsonlint.com":       Productive,
	"caniuse.com":        Productive,
	"bundlejs.com":       Productive,
	"transform.tools":    Productive,
	"typescriptlang.org": Productive,
	"rust-lang.org":      Productive,
	"go.dev":             Productive,
	"python.org":         Productive,

	// CMS & website builders (work)
	"wordpress.com": Productive,
	"webflow.com":   Productive,
	"ghost.org":     Productive,

	// Data & analytics tools
	"datastudio.google.com":   Productive,
	"lookerstudio.google.com": Productive,
	"tableau.com":             Productive,
	"metabase.com":            Productive,

	// Video streaming
	"youtube.com":     Distraction,
	"netflix.com":     Distraction,
	"twitch.tv":       Distraction,
	"disneyplus.com":  Distraction,
	"hulu.com":        Distraction,
	"hbomax.com":      Distraction,
	"max.com":         Distraction,
	"primevideo.com":  Distraction,
	"peacocktv.com":   Distraction,
	"crunchyroll.com": Distraction,
	"funimation.com":  Distraction,
	"bilibili.com":    Distraction,
	"dailymotion.com": Distraction,
	"iqiyi.com":       Distraction,
	"youku.com":       Distraction,
	"mango.tv":        Distraction,

	// Social media
	"facebook.com":    Distraction,
	"instagram.com":   Distraction,
	"twitter.com":     Distraction,
	"x.com":           Distraction,
	"tiktok.com":      Distraction,
	"reddit.com":      Distraction,
	"snapchat.com":    Distraction,
	"pinterest.com":   Distraction,
	"tumblr.com":      Distraction,
	"weibo.com":       Distraction,
	"douyin.com":      Distraction,
	"xiaohongshu.com": Distraction,
	"threads.net":     Distraction,
	"mastodon.social": Distraction,
	"bsky.app":        Distraction,
	"kuaishou.com":    Distraction,

	// Entertainment & gaming
	"9gag.com":               Distraction,
	"buzzfeed.com":           Distraction,
	"ign.com":                Distraction,
	"gamespot.com":           Distraction,
	"polygon.com":            Distraction,
	"kotaku.com":             Distraction,
	"pcgamer.com":            Distraction,
	"steam.com":              Distraction,
	"store.steampowered.com": Distraction,
	"epicgames.com":          Distraction,
	"roblox.com":             Distraction,
	"fandom.com":             Distraction,
	"knowyourmeme.com":       Distraction,
	"ifunny.co":              Distraction,

	// Celebrity & gossip
	"tmz.com":           Distraction,
	"people.com":        Distraction,
	"eonline.com":       Distraction,
	"justjared.com":     Distraction,
	"hollywoodlife.com": Distraction,

	// Sports (leisure)
	"espn.com":      Distraction,
	"nba.com":       Distraction,
	"nfl.com":       Distraction,
	"mlb.com":       Distraction,
	"cbssports.com": Distraction,

	// Search engines
	"google.com":     Neutral,
	"bing.com":       Neutral,
	"duckduckgo.com": Neutral,
	"yahoo.com":      Neutral,
	"baidu.com":      Neutral,
	"yandex.com":     Neutral,
	"ecosia.org":     Neutral,

	// Email clients
	"gmail.com":       Neutral,
	"mail.google.com": Neutral,
	"outlook.com":     Neutral,
	"mail.yahoo.com":  Neutral,
	"proton.me":       Neutral,
	"protonmail.com":  Neutral,

	// Calendars & scheduling
	"calendar.google.com": Neutral,
	"calendar.apple.com":  Neutral,
	"calendly.com":        Neutral,

	// Maps & navigation
	"maps.google.com": Neutral,
	"maps.apple.com":  Neutral,

	// Weather
	"weather.com":     Neutral,
	"accuweather.com": Neutral,

	// Reference
	"wikipedia.org":        Neutral,
	"wikimedia.org":        Neutral,
	"translate.google.com": Neutral,
	"deepl.com":            Neutral,

	// E-commerce / shopping
	"amazon.com":     Neutral,
	"ebay.com":       Neutral,
	"shopee.com":     Neutral,
	"taobao.com":     Neutral,
	"jd.com":         Neutral,
	"rakuten.com":    Neutral,
	"aliexpress.com": Neutral,

	// Finance / banking
	"paypal.com":        Neutral,
	"stripe.com":        Neutral,
	"wise.com":          Neutral,
	"revolut.com":       Neutral,
	"chase.com":         Neutral,
	"bankofamerica.com": Neutral,

	// Cloud storage
	"dropbox.com": Neutral,
	"box.com":     Neutral,
	"icloud.com":  Neutral,

	// Misc / system
	"localhost": Neutral,
	"127.0.0.1": Neutral,

	// Communication (general)
	"discord.com":      Neutral,
	"telegram.org":     Neutral,
	"web.telegram.org": Neutral,
	"web.whatsapp.com": Neutral,
	"signal.org":       Neutral,
	"line.me":          Neutral,

	// News (general)
	"bbc.com":         Neutral,
	"reuters.com":     Neutral,
	"apnews.com":      Neutral,
	"theguardian.com": Neutral,
	"nytimes.com":     Neutral,
	"wsj.com":         Neutral,
	"ft.com":          Neutral,
	"bloomberg.com":   Neutral,
	"economist.com":   Neutral,
	"techcrunch.com":  Neutral,
	"theverge.com":    Neutral,
	"wired.com":       Neutral,
	"arstechnica.com": Neutral,

	// Job search
	"linkedin.com":   Neutral,
	"indeed.com":     Neutral,
	"glassdoor.com":  Neutral,
	"levels.fyi":     Neutral,
	"104.com.tw":     Neutral,
	"1111.com.tw":    Neutral,
	"cakeresume.com": Neutral,
}

// DefaultCategories returns a copy of the built-in classification table.
func DefaultCategories() map[string]Category {
	out := make(map[string]Category, len(defaultCategories))
	for k, v := range defaultCategories {
		out[k] = v
	}
	return out
}
