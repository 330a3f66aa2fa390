package bot

const startText = "Hello! I'm the Jira Bot. Use /task to create a new Jira story."

const taskUsageText = `❌ Please provide a task description.

📝 Usage examples:
• /task Fix login bug
• /task Add new feature component: авиа-параметры
• /task Fix critical bug type: Bug
• /task desc: Implement user authentication system
• /task Update database component: devops type: Bug sprint: active

💡 Available issue types: Story, Bug
💡 Components are matched using transliteration and fuzzy matching
💡 Use /help for more detailed information`

const helpText = `🤖 Jira Bot Commands:

/task <summary> - Create a new Jira story
/task <summary> component: <label> - Use a specific component
/task <summary> type: <issue_type> - Use a specific issue type (Story, Bug)
/task <summary> sprint: <name|active> - Put the task into a sprint
/task <summary> project: <KEY> - Create the task in another project
/task <summary> link: <ISSUE-KEY|number> - Link the task to an existing issue
/task <summary> desc: <description> - Set the task description
/comment <ISSUE-KEY> <text> - Comment on an issue
/link <message_ref> <ISSUE-KEY> - Link a message to an issue
/unlink <message_ref> <ISSUE-KEY> - Remove a link
/links <message_ref> - Show the issues linked to a message
/help - Show this help message
/start - Start the bot
/userinfo - Show your user information
/admin - Show admin information (requires authorization)

📝 Examples:
/task Fix login bug
/task Add new feature component: авиа-параметры
/task Fix critical bug type: Bug sprint: active
/task desc: Implement user authentication system

💡 Features:
• Component and sprint matching uses transliteration and fuzzy matching for Russian labels
• Components are fetched from Jira (DEPRECATED components are filtered out)
• Send /task as a photo or document caption to attach the file
• Reply to a message with /task to quote it in the description`
