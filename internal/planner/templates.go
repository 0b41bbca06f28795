package planner

// phaseTemplate describes one phase of a category. Ratios of a category
// sum to 1.0.
type phaseTemplate struct {
	Title       string
	Description string
	Ratio       float64
	Type        PhaseType
}

// taskTemplate text may contain {title}, replaced by the plan title.
type taskTemplate struct {
	Text string
	Tags []string
}

// PhaseType selects the task templates of a phase.
type PhaseType string

const (
	PhaseFoundation   PhaseType = "foundation"
	PhaseLearning     PhaseType = "learning"
	PhasePractice     PhaseType = "practice"
	PhaseReview       PhaseType = "review"
	PhaseAdaptation   PhaseType = "adaptation"
	PhaseImprovement  PhaseType = "improvement"
	PhaseIntensive    PhaseType = "intensive"
	PhaseRecovery     PhaseType = "recovery"
	PhasePlanning     PhaseType = "planning"
	PhaseDevelopment  PhaseType = "development"
	PhaseTesting      PhaseType = "testing"
	PhaseLaunch       PhaseType = "launch"
	PhaseResearch     PhaseType = "research"
	PhaseDrafting     PhaseType = "drafting"
	PhaseEditing      PhaseType = "editing"
	PhasePublishing   PhaseType = "publishing"
	PhaseAwareness    PhaseType = "awareness"
	PhaseAcquisition  PhaseType = "acquisition"
	PhaseMastery      PhaseType = "mastery"
	PhasePreparation  PhaseType = "preparation"
	PhaseExecution    PhaseType = "execution"
	PhaseOptimization PhaseType = "optimization"
	PhaseCompletion   PhaseType = "completion"
)

var phaseTemplates = map[Category][]phaseTemplate{
	CategoryLearning: {
		{"基础入门", "建立知识框架，掌握基本概念", 0.25, PhaseFoundation},
		{"系统学习", "深入学习核心内容，建立知识体系", 0.35, PhaseLearning},
		{"实践应用", "通过练习巩固所学，积累实战经验", 0.25, PhasePractice},
		{"冲刺提升", "查漏补缺，模拟测试，全面提升", 0.15, PhaseReview},
	},
	CategoryFitness: {
		{"适应期", "建立运动习惯，适应训练强度", 0.2, PhaseAdaptation},
		{"提升期", "逐步增加强度，提升体能水平", 0.35, PhaseImprovement},
		{"强化期", "高强度训练，突破瓶颈", 0.3, PhaseIntensive},
		{"调整期", "恢复调整，巩固成果", 0.15, PhaseRecovery},
	},
	CategoryProject: {
		{"规划阶段", "需求分析，制定计划，资源准备", 0.15, PhasePlanning},
		{"开发阶段", "核心功能开发，迭代推进", 0.45, PhaseDevelopment},
		{"测试优化", "测试验证，问题修复，性能优化", 0.25, PhaseTesting},
		{"上线部署", "最终检查，正式发布，监控运营", 0.15, PhaseLaunch},
	},
	CategoryWriting: {
		{"素材收集", "收集资料，整理思路，确定大纲", 0.2, PhaseResearch},
		{"初稿撰写", "完成初稿，搭建内容框架", 0.4, PhaseDrafting},
		{"修改润色", "反复修改，完善细节，提升质量", 0.25, PhaseEditing},
		{"定稿发布", "最终审核，排版发布", 0.15, PhasePublishing},
	},
	CategorySkill: {
		{"了解认知", "了解领域，明确学习路径", 0.15, PhaseAwareness},
		{"技能习得", "系统学习，掌握核心技能", 0.4, PhaseAcquisition},
		{"刻意练习", "反复练习，形成肌肉记忆", 0.3, PhasePractice},
		{"精通掌握", "综合运用，达到精通水平", 0.15, PhaseMastery},
	},
	CategoryGeneral: {
		{"准备阶段", "明确目标，制定计划，准备资源", 0.15, PhasePreparation},
		{"执行阶段", "按计划推进，持续行动", 0.5, PhaseExecution},
		{"优化阶段", "复盘调整，优化方法", 0.2, PhaseOptimization},
		{"收尾阶段", "总结成果，完成目标", 0.15, PhaseCompletion},
	},
}

func tmpl(text string, tags ...string) taskTemplate {
	return taskTemplate{Text: text, Tags: tags}
}

var taskTemplates = map[PhaseType][]taskTemplate{
	PhaseFoundation: {
		tmpl("收集{title}相关学习资料和教程", "准备"),
		tmpl("制定详细的学习计划和时间表", "计划"),
		tmpl("了解核心概念和基本术语", "学习"),
		tmpl("完成入门级练习和示例", "练习"),
		tmpl("建立学习笔记体系", "记录"),
		tmpl("加入相关学习社群", "社交"),
	},
	PhaseLearning: {
		tmpl("系统学习核心章节内容", "学习"),
		tmpl("完成章节练习和作业", "练习"),
		tmpl("整理和复习学习笔记", "复习"),
		tmpl("解决学习中遇到的疑难点", "问题"),
		tmpl("与他人讨论交流学习心得", "交流"),
		tmpl("完成阶段性测试和评估", "测试"),
	},
	PhasePractice: {
		tmpl("完成综合实践项目", "项目"),
		tmpl("模拟真实场景练习", "模拟"),
		tmpl("分析和总结常见错误", "总结"),
		tmpl("寻找实际应用机会", "应用"),
		tmpl("获取他人反馈和建议", "反馈"),
		tmpl("记录实践经验和教训", "记录"),
	},
	PhaseReview: {
		tmpl("全面复习所学内容", "复习"),
		tmpl("完成综合模拟测试", "测试"),
		tmpl("针对薄弱环节强化", "强化"),
		tmpl("整理最终复习资料", "整理"),
		tmpl("调整状态，保持信心", "心态"),
		tmpl("做好最终准备工作", "准备"),
	},
	PhaseAdaptation: {
		tmpl("进行身体状态评估", "评估"),
		tmpl("制定个人训练计划", "计划"),
		tmpl("学习正确的动作要领", "技巧"),
		tmpl("建立规律的作息习惯", "习惯"),
		tmpl("完成低强度适应训练", "训练"),
		tmpl("记录训练数据和感受", "记录"),
	},
	PhaseImprovement: {
		tmpl("逐步增加训练强度", "训练"),
		tmpl("尝试新的训练方法", "方法"),
		tmpl("监控身体恢复状态", "监控"),
		tmpl("优化营养和休息", "恢复"),
		tmpl("完成阶段性体能测试", "测试"),
		tmpl("调整训练计划", "调整"),
	},
	PhaseIntensive: {
		tmpl("进行高强度专项训练", "高强度"),
		tmpl("突破个人记录", "突破"),
		tmpl("强化薄弱环节", "强化"),
		tmpl("模拟目标场景训练", "模拟"),
		tmpl("保持训练节奏和强度", "坚持"),
		tmpl("注意伤病预防", "预防"),
	},
	PhaseRecovery: {
		tmpl("降低训练强度", "调整"),
		tmpl("进行恢复性训练", "恢复"),
		tmpl("总结训练成果", "总结"),
		tmpl("制定后续计划", "计划"),
		tmpl("保持基础训练", "保持"),
		tmpl("庆祝达成目标", "庆祝"),
	},
	PhasePlanning: {
		tmpl("明确项目目标和范围", "目标"),
		tmpl("进行需求分析和调研", "调研"),
		tmpl("制定项目里程碑", "计划"),
		tmpl("评估资源和风险", "评估"),
		tmpl("建立项目文档", "文档"),
		tmpl("确定技术方案", "方案"),
	},
	PhaseDevelopment: {
		tmpl("完成核心功能开发", "开发"),
		tmpl("进行代码审查", "审查"),
		tmpl("编写技术文档", "文档"),
		tmpl("处理技术难点", "攻关"),
		tmpl("完成模块集成", "集成"),
		tmpl("进行初步测试", "测试"),
	},
	PhaseTesting: {
		tmpl("执行全面测试", "测试"),
		tmpl("修复发现的问题", "修复"),
		tmpl("进行性能优化", "优化"),
		tmpl("完成用户验收测试", "验收"),
		tmpl("准备上线文档", "文档"),
		tmpl("进行安全检查", "安全"),
	},
	PhaseLaunch: {
		tmpl("完成最终检查", "检查"),
		tmpl("执行上线部署", "部署"),
		tmpl("监控系统运行", "监控"),
		tmpl("收集用户反馈", "反馈"),
		tmpl("处理紧急问题", "运维"),
		tmpl("项目复盘总结", "总结"),
	},
	PhaseResearch: {
		tmpl("确定写作主题和角度", "主题"),
		tmpl("收集相关资料", "资料"),
		tmpl("整理思路和观点", "思路"),
		tmpl("制定写作大纲", "大纲"),
		tmpl("准备素材和案例", "素材"),
		tmpl("阅读参考作品", "阅读"),
	},
	PhaseDrafting: {
		tmpl("完成开篇部分", "写作"),
		tmpl("推进主体内容", "写作"),
		tmpl("完成结尾部分", "写作"),
		tmpl("保持写作节奏", "坚持"),
		tmpl("初步自我审阅", "审阅"),
		tmpl("补充遗漏内容", "补充"),
	},
	PhaseEditing: {
		tmpl("通读全文，调整结构", "结构"),
		tmpl("精炼语言表达", "润色"),
		tmpl("检查逻辑一致性", "逻辑"),
		tmpl("校对错字和语法", "校对"),
		tmpl("寻求他人反馈", "反馈"),
		tmpl("进行多轮修改", "修改"),
	},
	PhasePublishing: {
		tmpl("最终审核定稿", "定稿"),
		tmpl("处理排版格式", "排版"),
		tmpl("准备发布渠道", "渠道"),
		tmpl("正式发布上线", "发布"),
		tmpl("收集读者反馈", "反馈"),
		tmpl("总结写作经验", "总结"),
	},
	PhaseAwareness: {
		tmpl("了解领域全貌", "认知"),
		tmpl("明确学习路径", "路径"),
		tmpl("设定具体目标", "目标"),
		tmpl("准备学习资源", "资源"),
		tmpl("建立学习计划", "计划"),
		tmpl("寻找学习榜样", "榜样"),
	},
	PhaseAcquisition: {
		tmpl("学习核心概念", "概念"),
		tmpl("掌握基本技能", "技能"),
		tmpl("完成基础练习", "练习"),
		tmpl("理解应用场景", "应用"),
		tmpl("整理学习笔记", "笔记"),
		tmpl("完成阶段测试", "测试"),
	},
	PhaseMastery: {
		tmpl("综合运用所学", "综合"),
		tmpl("完成高难度任务", "挑战"),
		tmpl("形成个人风格", "风格"),
		tmpl("分享知识经验", "分享"),
		tmpl("持续精进提升", "精进"),
		tmpl("设定新的目标", "目标"),
	},
	PhasePreparation: {
		tmpl("明确{title}的具体目标", "目标"),
		tmpl("制定详细的行动计划", "计划"),
		tmpl("准备所需资源和工具", "资源"),
		tmpl("排除可能的障碍", "准备"),
		tmpl("建立进度跟踪机制", "跟踪"),
		tmpl("设置提醒和检查点", "提醒"),
	},
	PhaseExecution: {
		tmpl("按计划执行每日任务", "执行"),
		tmpl("记录进度和成果", "记录"),
		tmpl("及时解决遇到的问题", "问题"),
		tmpl("保持行动的持续性", "坚持"),
		tmpl("定期检视和调整", "调整"),
		tmpl("庆祝小的胜利", "激励"),
		tmpl("与他人交流分享", "交流"),
		tmpl("保持学习和改进", "学习"),
	},
	PhaseOptimization: {
		tmpl("复盘过去的执行情况", "复盘"),
		tmpl("分析有效和无效的方法", "分析"),
		tmpl("优化执行策略", "优化"),
		tmpl("调整资源分配", "调整"),
		tmpl("弥补之前的不足", "弥补"),
		tmpl("强化有效的做法", "强化"),
	},
	PhaseCompletion: {
		tmpl("完成最后的冲刺", "冲刺"),
		tmpl("检查所有目标达成情况", "检查"),
		tmpl("整理成果和文档", "整理"),
		tmpl("进行全面总结", "总结"),
		tmpl("分享经验和教训", "分享"),
		tmpl("规划下一步行动", "规划"),
	},
}

// tasksFor returns the task templates of a phase type, falling back to
// the execution templates for unknown types.
func tasksFor(pt PhaseType) []taskTemplate {
	if list, ok := taskTemplates[pt]; ok {
		return list
	}
	return taskTemplates[PhaseExecution]
}
