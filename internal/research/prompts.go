package research

const summaryPrompt = `You are a research analyst. Analyze the following information about "%s":

%s

Provide a structured summary with:
1. Key Facts (bullet points)
2. Main Insights (2-3 sentences)
3. Implications (what this means)
4. Sentiment (overall tone: positive/negative/neutral)

Be concise and focus on actionable insights.`

const insightsPrompt = `Based on this research summary about %s, identify the 3 most important insights or takeaways.

Summary:
%s

Format as:
1. [First insight]
2. [Second insight]
3. [Third insight]`

const keyFactsPrompt = `Extract the 5 most important points from this content:

%s

Format as numbered list. Each point should be one clear sentence.`

const sentimentPrompt = `Analyze the overall sentiment of this text in one word:
Positive, Negative, or Neutral.

Text: %s

Answer with just one word:`

const anglesPrompt = `Based on this research about %s, suggest 5 interesting angles for LinkedIn posts. Each angle should be one sentence.

Research Summary:
%s

Format as:
1. [Angle 1]
2. [Angle 2]
3. [Angle 3]
4. [Angle 4]
5. [Angle 5]`
