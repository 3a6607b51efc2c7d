package content

const keyPointsPrompt = `From this research summary, extract 3-5 key points that would be interesting for a LinkedIn post.

Summary:
%s

Return as a bulleted list:
• Point 1
• Point 2
• Point 3`

const basePrompt = `You are a LinkedIn content expert. Create an engaging LinkedIn post about:

Topic: %s
Style: %s
Key Points: %s

Guidelines:
- Start with a hook (first line must grab attention)
- Use short paragraphs (2-3 lines max)
- Include relevant emojis (but don't overdo it)
- End with engagement question or call-to-action
- Add 3-5 relevant hashtags at the end
- Professional but conversational tone
- Length: 150-250 words

Write the post now:`

const newsAnalysisPrompt = `You are writing a LinkedIn post analyzing recent news.

Topic: %s
Facts: %s

Structure:
1. Lead with the news (what happened)
2. Why it matters (2-3 points)
3. Implications for the industry
4. Your perspective or prediction
5. Engagement question

Tone: Analytical but accessible
Length: 150-200 words
Include: Relevant emojis and hashtags

Write the post:`

const educationalPrompt = `You are writing an educational LinkedIn post to teach something.

Topic: %s
Key Concepts: %s

Structure:
1. Hook: Common misconception or question
2. Clear explanation (use analogies if helpful)
3. Practical example
4. Key takeaway
5. Ask readers about their experience

Tone: Friendly teacher, not condescending
Length: 150-250 words
Include: Clear formatting, emojis, hashtags

Write the post:`

const opinionPrompt = `You are sharing a personal opinion/hot take.

Topic: %s
Your Stance: %s
Supporting Points: %s

Structure:
1. Bold opening statement (your opinion)
2. Context (why you're talking about this)
3. Your reasoning (2-3 points)
4. Acknowledge other perspectives
5. Invite debate/discussion

Tone: Confident but respectful
Length: 150-200 words
Include: Emojis, hashtags

Write the post:`

const engagementPrompt = `You are creating a post to spark conversation.

Topic: %s
Context: %s

Structure:
1. Present an interesting question or scenario
2. Provide context (1-2 paragraphs)
3. Show different perspectives
4. Ask for audience input

Tone: Curious and inviting
Length: 100-150 words
Focus: Getting comments and engagement

Write the post:`

const trendPrompt = `Write a LinkedIn post predicting future trends based on %s.

Current insights:
%s

Structure:
1. What's happening now
2. Why it matters
3. What's coming next (prediction)
4. How to prepare
5. Engagement question

Tone: Analytical but accessible
Length: 150-200 words
Include: Emojis and hashtags

Write the post:`

const improveHookPrompt = `Improve this opening line for a LinkedIn post:

Current: %s
Topic: %s

Make it more attention-grabbing. Use curiosity, surprise, or bold statement.
Return only the improved hook (one line).`

const hashtagsPrompt = `Suggest 5 relevant hashtags for this LinkedIn post:

%s

Return as: #Tag1 #Tag2 #Tag3 #Tag4 #Tag5
Mix popular and niche tags.`

const regeneratePrompt = `The following LinkedIn post needs to be rewritten with a fresh angle:

Previous post:
%s

Topic: %s
Style: %s
Research: %s

Generate a completely different post on the same topic with:
- Different opening hook
- Different angle/perspective
- Different examples or points
- Same professional tone
- 150-200 words

Write the new post:`
