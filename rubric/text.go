/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

const abcdText = `## ABCD Framework Rubric (1-5 Scale)

**EVALUATION LENS**: Focus on STRUCTURE and COMPLETENESS of the learning objective statement.
ABCD evaluates whether all four components are present and well-specified, NOT the cognitive level.

**HARD CONSTRAINTS**:
- If the objective uses "understand", "know", "learn", or "appreciate" WITHOUT clarifying HOW it will be demonstrated, the Behavior score must be 2 or lower
- If there is no explicit or strong implicit audience, the Audience score must be 3 or lower
- If there is no performance standard (explicit or implicit), the Degree score must be 2 or lower

### A - Audience (Who will learn?)
**5 - Excellent**: Explicitly states the learner (e.g., "Students will...", "Learners will..."). Crystal clear who is learning.
**4 - Good**: Audience is implicit but unambiguous from context (e.g., course syllabus context makes "Analyze..." clearly for students).
**3 - Adequate**: Audience can be inferred but requires assumptions. Some ambiguity exists.
**2 - Poor**: Audience is unclear or could apply to multiple groups (students, teachers, developers).
**1 - Unacceptable**: No identifiable audience. Generic statement that doesn't specify who learns.

### B - Behavior (What will they DO?) - FOCUS: Observable demonstration, not cognitive level
**5 - Excellent**: Uses precise, observable, measurable action verb (analyze, design, implement, evaluate, compare, construct). Behavior is concrete and demonstrable.
**4 - Good**: Uses clear action verb from Bloom's taxonomy mid-levels (apply, explain, demonstrate, classify). Observable and testable.
**3 - Adequate**: Uses weaker action verb that's harder to observe (describe, discuss, summarize). Measurability is questionable.
**2 - Poor**: Uses vague verb (understand, know, learn) without clarifying demonstration method. Hard to observe/measure.
**1 - Unacceptable**: No action verb, or uses purely passive verbs (be exposed to, appreciate, become aware of).

### C - Condition (Under what circumstances?)
**5 - Excellent**: Explicitly states conditions/context (e.g., "After completing the project...", "Using synchronization primitives...", "Given a scheduling scenario...").
**4 - Good**: Conditions are implicit but unambiguous from content (e.g., "Implement a scheduler" clearly implies "using a programming environment").
**3 - Adequate**: Some contextual hints exist but conditions are vague. Unclear when/how behavior occurs.
**2 - Poor**: Missing meaningful conditions. No context for when learning is demonstrated.
**1 - Unacceptable**: Completely absent. No indication of circumstances or context.

### D - Degree (How well?)
**5 - Excellent**: Specific quantified performance standard (e.g., "with 90% accuracy", "identifying at least 3 differences", "handling all 5 edge cases").
**4 - Good**: Implicit but clear standard (e.g., "correctly", "accurately", "all major components"). Reasonably unambiguous.
**3 - Adequate**: Weak implicit standard (e.g., "effectively", "appropriately"). Some ambiguity about success.
**2 - Poor**: Vague standard (e.g., "well", "properly") or minimal criterion. Success criteria unclear.
**1 - Unacceptable**: No standard specified. Impossible to determine what constitutes achievement.

**BINARY CHECKLIST** (Answer YES/NO for each, then assign scores):
1. [ ] Can you identify WHO is learning without making assumptions?
2. [ ] Does the verb describe an OBSERVABLE action (not a mental state)?
3. [ ] Are the CONDITIONS/CONTEXT stated or unambiguously implied?
4. [ ] Is there a STANDARD (explicit or clear implicit) that defines success?
5. [ ] Could you create an exam question/rubric to assess this objectively?`

const smartText = `## SMART Framework Rubric (1-5 Scale)

**EVALUATION LENS**: Focus on CLARITY, ASSESSABILITY, and PRACTICAL FEASIBILITY.
SMART evaluates whether the objective is actionable and useful for course planning, NOT just structural completeness.
DISTINCTION FROM ABCD: While ABCD asks "is behavior observable?", SMART asks "can we measure SUCCESS with concrete criteria?"

**HARD CONSTRAINTS**:
- If the objective uses "understand", "know", "appreciate", the Measurable score must be 2 or lower (cannot assess objectively)
- If content is generic ("OS concepts", "programming skills"), the Specific score must be 2 or lower
- If achievement would require more than one semester for target students, the Achievable score must be 2 or lower
- If the topic is peripheral to the course core, the Relevant score must be 3 or lower

### S - Specific (Is it focused and clear?)
**5 - Excellent**: Names exact concepts, algorithms, or skills (e.g., "Implement the Banker's algorithm", "Compare FCFS vs SJF scheduling"). No ambiguity about WHAT.
**4 - Good**: Specific domain with clear boundaries (e.g., "Analyze deadlock prevention strategies"). Scope is well-defined.
**3 - Adequate**: Somewhat specific but includes vague terms (e.g., "Understand synchronization mechanisms"). Scope is fuzzy.
**2 - Poor**: Very broad or generic (e.g., "Learn about OS", "Study memory"). Unclear what exactly is covered.
**1 - Unacceptable**: Completely vague (e.g., "Gain knowledge", "Explore concepts"). No discernible focus.

### M - Measurable (Can achievement be assessed with concrete criteria?) - DISTINCT FROM ABCD BEHAVIOR
**NOTE**: ABCD Behavior asks "is it observable?"; SMART Measurable asks "can we define SUCCESS criteria?"
**5 - Excellent**: Explicit success metrics (e.g., "correctly implement 3 algorithms", "identify all primitives", "with <5% overhead").
**4 - Good**: Uses verbs that enable rubric-based assessment (analyze, design, implement, compare). Clear grading criteria possible.
**3 - Adequate**: Can be measured but criteria are fuzzy (explain, describe, discuss). Grading would be somewhat subjective.
**2 - Poor**: Difficult to measure objectively. Uses weak verbs (understand, know) or no clear assessment method.
**1 - Unacceptable**: Cannot be measured meaningfully. Purely subjective outcomes or intangible goals.

### A - Achievable (Is it realistic for the target learners?)
**5 - Excellent**: Perfectly scoped for course level. Neither trivial nor impossible. Matches expected cognitive level.
**4 - Good**: Realistic but might be slightly challenging/easy. Generally appropriate for course.
**3 - Adequate**: Questionable difficulty level. Might be too advanced or too basic for stated course.
**2 - Poor**: Likely unrealistic. Too complex or too simple given course context.
**1 - Unacceptable**: Clearly impossible or insulting. Requires prerequisites not in course or is trivially obvious.

### R - Relevant (Does it align with course goals?)
**5 - Excellent**: Directly tied to core course concepts mentioned in course description. Essential learning.
**4 - Good**: Relevant to course domain. Supports main learning goals.
**3 - Adequate**: Tangentially related. Could be relevant but connection is weak.
**2 - Poor**: Questionable relevance. Peripheral topic that's not core to course.
**1 - Unacceptable**: Completely irrelevant. Doesn't belong in this course.

### T - Time-bound (Is timeframe implicit or explicit?)
**5 - Excellent**: Explicit timeframe (e.g., "by end of course", "after module 3", "by week 8"). Clear deadline.
**4 - Good**: Timeframe implicit but unambiguous (e.g., end-of-course expectation is standard for course objectives).
**3 - Adequate**: Timeframe vague or requires inference. Could be interpreted multiple ways.
**2 - Poor**: No clear timeframe. Unclear when achievement is expected.
**1 - Unacceptable**: Timeframe makes no sense, contradicts course structure, or is completely absent.

**BINARY CHECKLIST** (Answer YES/NO for each, then assign scores):
1. [ ] If you gave this to a student, would they know EXACTLY what topic/skill to learn?
2. [ ] Can you write a specific exam question or design a graded assignment for this?
3. [ ] Is this achievable within one semester for students at the stated course level?
4. [ ] Does this topic appear in the course description or align with stated course goals?
5. [ ] Is there a clear (explicit or standard implicit) timeframe for achievement?`

const bloomsText = `## Bloom's Taxonomy Rubric (1-5 Scale)

**EVALUATION LENS**: Focus on COGNITIVE LEVEL ACCURACY.
Bloom's evaluates whether the verb matches the actual thinking required, NOT just structural quality.

**HARD CONSTRAINTS**:
- If the verb is "understand", "know", "learn", the objective must be classified as Remember/Understand (low level), NOT higher
- If the task requires creating something new but the verb is "implement"/"apply", flag it as misclassified
- If the verb says "analyze" but the task is just recall/application, the Cognitive Demand score must be 2 or lower

### Overall Taxonomy Alignment
**5 - Excellent**: Uses precise Bloom's verb from correct level. Cognitive demand matches verb perfectly. No ambiguity about intended level.
**4 - Good**: Uses appropriate Bloom's verb. Minor mismatch between verb and cognitive complexity (off by one level). Generally aligned.
**3 - Adequate**: Uses Bloom's-adjacent verb but complexity doesn't match stated level (e.g., says "analyze" but task is "apply").
**2 - Poor**: Uses weak verb (understand, know) or verb significantly mismatches task complexity (off by 2+ levels).
**1 - Unacceptable**: No Bloom's verb or completely wrong level (e.g., uses "list" for a creation task).

### Level-Specific Criteria

#### Remember (Recall facts, terms, basic concepts)
**Appropriate verbs**: Define, List, Recall, Identify, Label, Name, State, Recognize
**5**: Pure recall with no interpretation required. Clear factual knowledge.
**3**: Mix of recall and understanding. Not pure memorization.
**1**: Requires higher-order thinking, not just recall.

#### Understand (Explain ideas, concepts; summarize; interpret)
**Appropriate verbs**: Explain, Describe, Summarize, Paraphrase, Interpret, Classify, Compare
**5**: Requires explanation in own words or interpretation. Goes beyond recall.
**3**: Borders on recall or application. Not clearly understanding.
**1**: Either pure recall or requires analysis/application.

#### Apply (Use knowledge in new situations; implement procedures)
**Appropriate verbs**: Apply, Implement, Execute, Use, Demonstrate, Solve, Compute
**5**: Clear application of concept/procedure to new scenario. Execution focus.
**3**: Borders on understanding or analysis. Application unclear.
**1**: No clear application; either recall or higher-order analysis.

#### Analyze (Break down, examine relationships, distinguish parts)
**Appropriate verbs**: Analyze, Examine, Compare, Contrast, Differentiate, Distinguish, Investigate
**5**: Requires breaking down into components, finding relationships, examining structure.
**3**: More like application or evaluation. Analysis unclear.
**1**: Lower-level task (recall/understand) mislabeled as analysis.

#### Evaluate (Judge, critique, assess based on criteria)
**Appropriate verbs**: Evaluate, Assess, Critique, Judge, Justify, Argue, Defend
**5**: Requires making judgments, defending positions, critiquing based on standards.
**3**: Borders on analysis or creation. Evaluation unclear.
**1**: No clear evaluative judgment required.

#### Create (Design, construct, develop something new)
**Appropriate verbs**: Design, Develop, Create, Construct, Formulate, Plan, Compose
**5**: Requires producing something original/new. Synthesis of multiple concepts.
**3**: More like apply or evaluate. Not truly creating something new.
**1**: Lower-level task mislabeled as create.

**BINARY CHECKLIST** (Answer YES/NO, then assign scores):
1. [ ] Does the verb accurately represent the cognitive level (e.g., "analyze" for Analyze level)?
2. [ ] Does the actual TASK complexity match what the verb implies?
3. [ ] Can you classify this into a SINGLE Bloom's level without debating?
4. [ ] If the verb is "understand" or "know", is it scored as Remember/Understand (not higher)?`
