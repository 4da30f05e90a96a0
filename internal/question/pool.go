package question

import "github.com/sharvarianand/intervuex/internal/interview"

// Curated local pools, one per mode. They back every turn where the
// external generation collaborator is unavailable or returns garbage.

var technicalStrategy = strategy{
	instructions: "This is a technical interview. Focus on problem-solving, trade-offs, and system design.",
	pool: []interview.Question{
		{
			Text:  "How would you design a system that needs to handle millions of requests per day? Walk me through the main components.",
			Focus: "system_design",
		},
		{
			Text:  "Describe the architecture of your most complex project. What were the key technical decisions you made?",
			Focus: "architecture",
		},
		{
			Text:     "If you had to build a real-time notification system, what technologies would you use and why?",
			Focus:    "real_time_systems",
			FollowUp: true,
		},
		{
			Text:  "Tell me about the most difficult bug you've ever had to fix. What was your debugging process?",
			Focus: "debugging",
		},
		{
			Text:  "How would you troubleshoot a production issue where the application is running slow but you don't know why?",
			Focus: "performance",
		},
		{
			Text:     "Explain how you would implement authentication and authorization in a web application. What security considerations are important?",
			Focus:    "security",
			FollowUp: true,
		},
		{
			Text:  "What testing strategies do you follow? How do you decide what to unit test vs integration test?",
			Focus: "testing",
		},
		{
			Text:  "How would you optimize a slow database query? Walk me through your approach.",
			Focus: "databases",
		},
		{
			Text:     "When would you choose a microservices architecture vs a monolithic one? What are the trade-offs?",
			Focus:    "technical_decisions",
			FollowUp: true,
		},
		{
			Text:  "Walk me through a project you're most proud of. What challenges did you overcome?",
			Focus: "projects",
		},
		{
			Text:  "Explain the concept of time complexity. How do you analyze the efficiency of your code?",
			Focus: "algorithms",
		},
		{
			Text:  "What design patterns do you use frequently? Give me an example of when you applied one.",
			Focus: "design_patterns",
		},
		{
			Text:  "How do you handle errors and exceptions in your applications? What's your error handling strategy?",
			Focus: "error_handling",
		},
		{
			Text:  "Describe your experience with CI/CD. How do you set up a deployment pipeline?",
			Focus: "devops",
		},
		{
			Text:  "How do you monitor your applications in production? What metrics do you track?",
			Focus: "monitoring",
		},
		{
			Text:     "Explain how you handle concurrency in your applications. What challenges have you faced?",
			Focus:    "concurrency",
			FollowUp: true,
		},
		{
			Text:  "What's the difference between synchronous and asynchronous programming? When would you use each?",
			Focus: "async_programming",
		},
		{
			Text:  "How do you design a RESTful API? What makes an API well-designed?",
			Focus: "api_design",
		},
		{
			Text:  "How would this system behave under 10x the current load? What would break first?",
			Focus: "scalability",
		},
		{
			Text:  "If you could redesign one of your past projects from scratch, what would you do differently and why?",
			Focus: "reflection",
		},
	},
}

var behavioralStrategy = strategy{
	instructions: "This is a behavioral interview. Ask STAR-method questions about specific past situations that cannot be answered with hypotheticals.",
	pool: []interview.Question{
		{
			Text:  "Tell me about a time when you had to deal with a difficult team member. How did you handle the situation and what was the outcome?",
			Focus: "conflict_resolution",
		},
		{
			Text:  "Describe a situation where you had to meet a tight deadline. What steps did you take to ensure you delivered on time?",
			Focus: "time_management",
		},
		{
			Text:  "Give me an example of when you had to learn a new skill or technology quickly. How did you approach it?",
			Focus: "learning_agility",
		},
		{
			Text:  "Tell me about a time when you failed at something. What did you learn from that experience?",
			Focus: "adaptability",
		},
		{
			Text:  "Describe a situation where you had to convince others to adopt your idea or approach. How did you do it?",
			Focus: "leadership",
		},
		{
			Text:  "Tell me about a time when you had to work with someone whose communication style was very different from yours.",
			Focus: "communication",
		},
		{
			Text:  "Give me an example of when you took initiative on a project without being asked.",
			Focus: "initiative",
		},
		{
			Text:  "Describe a situation where you had to prioritize multiple important tasks. How did you decide what to do first?",
			Focus: "problem_solving",
		},
		{
			Text:     "Tell me about a time when you disagreed with your manager. How did you handle it?",
			Focus:    "difficult_conversations",
			FollowUp: true,
		},
		{
			Text:  "Describe a situation where you had to motivate a team during a challenging period.",
			Focus: "team_motivation",
		},
		{
			Text:  "Tell me about a time when you received constructive criticism. How did you respond?",
			Focus: "feedback",
		},
		{
			Text:  "Give me an example of when you had to make a decision with incomplete information.",
			Focus: "decision_making",
		},
		{
			Text:  "Tell me about a time when you went above and beyond for a customer or user.",
			Focus: "ownership",
		},
		{
			Text:  "Describe a situation where you had to adapt to a significant change at work. How did you handle it?",
			Focus: "change_management",
		},
		{
			Text:  "Tell me about a time when you had to give difficult feedback to a colleague or teammate.",
			Focus: "giving_feedback",
		},
	},
}

var projectReviewStrategy = strategy{
	instructions: "This is an academic viva on the candidate's own project. Verify they actually built and understand it: ask WHY decisions were made, probe implementation details, and test whether they can explain trade-offs.",
	pool: []interview.Question{
		{
			Text:               "Walk me through the most challenging technical problem you faced in your project and how you solved it step by step.",
			Focus:              "challenges",
			VerificationIntent: "Verify hands-on experience",
		},
		{
			Text:               "Explain the architecture of your project. Why did you structure it this way?",
			Focus:              "architecture",
			VerificationIntent: "Verify understanding of system design",
		},
		{
			Text:               "What technologies did you choose for this project and why? What alternatives did you consider?",
			Focus:              "tech_stack_choice",
			VerificationIntent: "Verify decision-making process",
		},
		{
			Text:               "How would you scale your project to handle 10x more users? What would be the bottlenecks?",
			Focus:              "scalability",
			VerificationIntent: "Verify understanding of scalability",
			FollowUp:           true,
		},
		{
			Text:               "What security measures did you implement? How would you protect against common attacks?",
			Focus:              "security",
			VerificationIntent: "Verify security awareness",
		},
		{
			Text:               "How did you test your project? What was your testing strategy?",
			Focus:              "testing",
			VerificationIntent: "Verify quality practices",
		},
		{
			Text:               "Walk me through your deployment process. How did you get this to production?",
			Focus:              "deployment",
			VerificationIntent: "Verify DevOps knowledge",
		},
		{
			Text:               "If you had to work on this project with a team, how would you divide the work?",
			Focus:              "team_collaboration",
			VerificationIntent: "Verify collaboration skills",
		},
		{
			Text:               "What would you improve in this project if you had more time?",
			Focus:              "future_improvements",
			VerificationIntent: "Verify self-awareness and growth mindset",
		},
		{
			Text:               "Explain a piece of code you're particularly proud of. Why is it well-written?",
			Focus:              "code_quality",
			VerificationIntent: "Verify coding skills",
		},
		{
			Text:               "How does data flow through your application? Walk me through a typical user interaction.",
			Focus:              "data_flow",
			VerificationIntent: "Verify understanding of system",
		},
		{
			Text:               "What was the most difficult bug you encountered? How did you debug it?",
			Focus:              "debugging",
			VerificationIntent: "Verify debugging skills",
		},
		{
			Text:               "How do you handle errors in your application? What happens when something fails?",
			Focus:              "error_handling",
			VerificationIntent: "Verify robustness",
		},
		{
			Text:               "What database did you use and how did you design the schema?",
			Focus:              "database_design",
			VerificationIntent: "Verify database knowledge",
		},
		{
			Text:               "If you were to rebuild this project from scratch, what would you do differently?",
			Focus:              "lessons_learned",
			VerificationIntent: "Verify learning and reflection",
		},
	},
}
